package column

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"

	"shopkeep/action"
	nt "shopkeep/entity"
	"shopkeep/imgview"
	"shopkeep/theme"
)

const (
	thumbWidth  = 10
	thumbHeight = 3
)

// Env carries what cell renderers need beyond the value.
type Env struct {
	Theme  theme.Theme
	Dates  DateFormat
	Images imgview.Renderer
}

// Renderer renders a single cell value.
type Renderer func(env Env, val nt.Value) (string, error)

var renderers = map[Kind]Renderer{
	Text:       renderText,
	Status:     renderStatus,
	Date:       renderDate,
	Images:     renderImages,
	Brand:      renderBrand,
	Categories: renderCategories,
	Action:     renderAction,
}

// Render renders the cell of row under col.
func Render(env Env, row nt.Row, col Column) (cell string, err error) {

	render, ok := renderers[col.Kind]
	if !ok {
		err = errors.Errorf("no renderer for column %q of kind %s", col.Key, col.Kind)
		return
	}

	cell, err = render(env, row.Value(col.Key))
	if err != nil {
		err = errors.Wrapf(err, "failed to render column %q for product %d", col.Key, row.Key())
		return
	}

	switch col.Kind {
	case Images, Action:
	default:
		cell = fit(cell, col.Width)
	}
	return
}

// unexported

func renderText(env Env, val nt.Value) (string, error) {
	return val.String(), nil
}

func renderStatus(env Env, val nt.Value) (string, error) {

	status, err := nt.ParseStatus(val.String())
	if err != nil {
		return "", err
	}
	return string(status), nil
}

func renderDate(env Env, val nt.Value) (string, error) {

	if val.IsNil() {
		return "", nil
	}

	tm, err := val.Time()
	if err != nil {
		return "", err
	}
	return env.Dates.Format(tm), nil
}

func renderImages(env Env, val nt.Value) (string, error) {

	if val.IsNil() {
		return "", nil
	}

	images, ok := val.Raw.([]nt.ProductImage)
	if !ok {
		return "", errors.Errorf("images value is %T", val.Raw)
	}
	if len(images) == 0 {
		return "", nil
	}

	renderer := env.Images
	if renderer == nil {
		renderer = imgview.Thumb{Border: env.Theme.MutedStyle()}
	}

	thumbs := make([]string, len(images))
	for i, img := range images {
		thumbs[i] = renderer.Render(img.Image.Src, img.Image.Alt, thumbWidth, thumbHeight)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, thumbs...), nil
}

func renderBrand(env Env, val nt.Value) (string, error) {

	if val.IsNil() {
		return "", nil
	}

	ref, ok := val.Raw.(nt.BrandRef)
	if !ok {
		return "", errors.Errorf("brand value is %T", val.Raw)
	}
	return ref.Brand.Name, nil
}

func renderCategories(env Env, val nt.Value) (string, error) {

	if val.IsNil() {
		return "", nil
	}

	cats, ok := val.Raw.([]nt.CategoryRef)
	if !ok {
		return "", errors.Errorf("categories value is %T", val.Raw)
	}

	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = cat.Category.Name
	}
	return strings.Join(names, "\n"), nil
}

func renderAction(env Env, val nt.Value) (string, error) {

	mt, ok := val.Raw.(nt.Mutate)
	if !ok {
		return "", errors.Errorf("mutate value is %T", val.Raw)
	}
	return action.Render(env.Theme, mt), nil
}

// fit truncates each line to width; zero width leaves it alone.
func fit(in string, width int) string {

	if width <= 0 {
		return in
	}

	lines := strings.Split(in, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

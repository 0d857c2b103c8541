package detail

import (
	"encoding/json"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	nt "shopkeep/entity"
)

// DetailPanel shows the selected product as indented json.
type DetailPanel struct {
	product      *nt.Product
	contentLines []string // Rendered content split into lines (cached)

	Width        int
	height       int
	Focused      bool
	ScrollOffset int // Line offset for scrolling content
}

func NewDetailPanel() DetailPanel {
	return DetailPanel{}
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case ProductMsg:
		prd := msg.Product
		pnl.product = &prd
		pnl.computeContentLines()
		pnl.ScrollOffset = 0

	case SizeMsg:
		pnl.Width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = min(pnl.ScrollOffset, pnl.maxScroll())

	case tea.KeyPressMsg:
		if !pnl.Focused {
			return pnl, nil
		}

		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			if pnl.ScrollOffset < pnl.maxScroll() {
				pnl.ScrollOffset++
			}

		case "pgup":
			pnl.ScrollOffset = max(pnl.ScrollOffset-pnl.height, 0)

		case "pgdown":
			pnl.ScrollOffset = min(pnl.ScrollOffset+pnl.height, pnl.maxScroll())
		}
	}

	return pnl, nil
}

// Render renders the visible portion of the product.
func (pnl DetailPanel) Render() string {

	if pnl.contentLines == nil {
		return "No product selected"
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	if pnl.Width > 0 {
		cut := make([]string, len(visibleLines))
		for i, line := range visibleLines {
			cut[i] = ansi.Truncate(line, pnl.Width, "…")
		}
		visibleLines = cut
	}

	return strings.Join(visibleLines, "\n")
}

func (pnl DetailPanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// unexported

func (pnl DetailPanel) maxScroll() int {

	if pnl.height <= 0 || len(pnl.contentLines) <= pnl.height {
		return 0
	}
	return len(pnl.contentLines) - pnl.height
}

// computeContentLines renders the product as json and splits into lines
func (pnl *DetailPanel) computeContentLines() {

	if pnl.product == nil {
		pnl.contentLines = nil
		return
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(pnl.product)
	if err != nil {
		pnl.contentLines = []string{"Error pretty-printing JSON: " + err.Error()}
		return
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	pnl.contentLines = strings.Split(content, "\n")
}

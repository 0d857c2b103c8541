package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"

	"shopkeep"
	nt "shopkeep/entity"
	"shopkeep/store/duck"
	"shopkeep/util"
)

const (
	cfgFile = "shopkeep.yaml"
	cfgMode = 0644
)

type Config struct {
	LogFile   string          `yaml:"log_file"`
	MaxLength int             `yaml:"max_length"`
	StorePath string          `yaml:"store_path"`
	SeedFile  string          `yaml:"seed_file,omitempty"`
	Shopkeep  shopkeep.Config `yaml:"shopkeep"`
}

const sample = `# shopkeep config
log_file: shopkeep.log
max_length: 240
store_path: ""        # empty for in-memory
seed_file: seed.yaml  # loaded into an empty store
shopkeep:
  page_size: 10
  locale: en-US
  mode: dark
  layout_file: ""     # column overrides
`

func main() {

	path := flag.String("config", cfgFile, "path to config file")
	flag.Parse()

	wrote, err := util.SampleConfig([]byte(sample), *path, cfgMode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
	}
	if wrote {
		fmt.Printf("wrote sample config to %s\n", *path)
	}

	cfg := &Config{}
	err = util.LoadConfig(cfg, *path)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}

	logFile := util.OpenLog(cfg.LogFile, cfgMode)
	defer util.CloseLog(logFile)

	lgr := cfg.newLogger(logFile)
	ctx := lgr.WithFields(context.Background(), "app", "shopkeep")

	dk, err := duck.New(cfg.StorePath, lgr)
	if err != nil {
		lgr.Error(ctx, "failed to open store", err)
		os.Exit(1)
	}
	defer dk.Close()

	err = seed(ctx, dk, cfg.SeedFile)
	if err != nil {
		lgr.Error(ctx, "failed to seed store", err)
		os.Exit(1)
	}

	model, err := cfg.Shopkeep.New(ctx, dk, lgr)
	if err != nil {
		lgr.Error(ctx, "failed to create model", err)
		os.Exit(1)
	}

	lgr.Info(ctx, "starting", "store", dk.Name())

	program := tea.NewProgram(model)
	_, err = program.Run()
	if err != nil {
		lgr.Error(ctx, "program exited with error", err)
		os.Exit(1)
	}
}

// newLogger builds the logger writing to w.
func (cfg *Config) newLogger(w io.Writer) *sabot.Sabot {
	return &sabot.Sabot{Writer: w, MaxLen: cfg.MaxLength}
}

// seed loads the seed file into an empty store.
func seed(ctx context.Context, dk *duck.Duck, path string) (err error) {

	if path == "" {
		return
	}

	count, err := dk.Count(ctx, nt.MainList)
	if err != nil || count > 0 {
		return
	}

	sd, err := duck.LoadSeed(path)
	if err != nil {
		return
	}
	err = dk.Load(ctx, sd)
	return
}

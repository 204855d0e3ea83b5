package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/oktex/settings"
	"github.com/benoitkugler/oktex/texfile"
	"github.com/benoitkugler/oktex/texscript"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	output     string
	config     string
	tex        string
	inline     bool
	colorSpace string
	encoding   string
	dpi        float64
}

func renderCmd(logger log.Logger) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render SCRIPT",
		Short: "Write the TeX file described by SCRIPT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			out, err := render(args[0], flags, s, logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Output TeX file (default: SCRIPT with .tex extension)")
	f.StringVar(&flags.config, "config", "", "TOML settings file")
	f.StringVar(&flags.tex, "tex", "", "TeX engine, overriding the settings")
	f.BoolVar(&flags.inline, "inline", false, "Write an inline picture, sharing its preamble")
	f.StringVar(&flags.colorSpace, "colorspace", "", "Convert colors to gray, rgb or cmyk")
	f.StringVar(&flags.encoding, "encoding", "", "Charset of the script (default: its encoding key, or UTF-8)")
	f.Float64Var(&flags.dpi, "dpi", 0, "Resolution of the rendered layers")
	return cmd
}

// loadSettings reads the config file, then applies the flags
// explicitly set.
func loadSettings(cmd *cobra.Command, flags renderFlags) (settings.Settings, error) {
	s := settings.Defaults()
	if flags.config != "" {
		var err error
		if s, err = settings.Load(flags.config); err != nil {
			return s, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("tex") {
		s.Tex = flags.tex
	}
	if changed("inline") {
		s.InlineTex = flags.inline
	}
	if changed("colorspace") {
		s.ColorSpace = flags.colorSpace
	}
	if changed("dpi") {
		s.DPI = flags.dpi
	}
	return s, nil
}

// render writes the TeX file for `script` and returns its name.
func render(script string, flags renderFlags, s settings.Settings, logger log.Logger) (string, error) {
	output := flags.output
	if output == "" {
		output = strings.TrimSuffix(script, filepath.Ext(script)) + ".tex"
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	if s.OutName == "" {
		s.OutName = base + ".pdf"
	}

	cfg, err := texfile.ConfigFrom(s)
	if err != nil {
		return "", err
	}
	sc, err := texscript.ReadFile(script, flags.encoding)
	if err != nil {
		return "", err
	}

	e, err := texfile.New(output, sc.BBox(), cfg,
		texfile.WithLogger(logger),
		texfile.WithPreamble(texfile.DefaultPreamble{User: s.Preamble}),
	)
	if err != nil {
		return "", err
	}
	logger.Info("Rendering", "script", script, "output", output, "engine", cfg.Engine)
	err = sc.Run(e, texscript.Options{LayerBase: base, DPI: s.DPI, Logger: logger})
	if err != nil {
		return "", fmt.Errorf("%s: %w", script, err)
	}
	return output, nil
}

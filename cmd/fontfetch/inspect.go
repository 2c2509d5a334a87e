package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fontfetch/fontfetch/internal/fontinfo"
	"github.com/fontfetch/fontfetch/internal/storage"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [font files...]",
	Short: "Show the metadata of saved fonts",
	Long: `Show the family, full name and glyph count of font files.
Without arguments every .ttf file in the output directory is inspected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		paths := args
		if len(paths) == 0 {
			fs := storage.NewFileStorage(cfg.OutputDir)
			names, err := fs.List(".ttf")
			if err != nil {
				return fmt.Errorf("listing fonts: %w", err)
			}
			for _, name := range names {
				paths = append(paths, filepath.Join(fs.Dir(), name))
			}
		}

		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintln(out, "No fonts saved")
			return nil
		}

		var invalid int
		for _, p := range paths {
			info, err := fontinfo.ParseFile(p)
			if err != nil {
				fmt.Fprintf(out, "  - %s: %v\n", filepath.Base(p), err)
				invalid++
				continue
			}
			fmt.Fprintf(out, "  - %s: %s (%s), %d glyphs, %d bytes\n",
				filepath.Base(p), info.Family, info.FullName, info.NumGlyphs, info.Size)
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d files are not valid fonts", invalid, len(paths))
		}
		return nil
	},
}

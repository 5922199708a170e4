package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gobioeng/halog/pkg/filecheck"
)

// InfoOptions holds command-line options for the info command.
type InfoOptions struct {
	Output string
}

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	opts := &InfoOptions{}

	cmd := &cobra.Command{
		Use:   "info <log-file>...",
		Short: "Show file metadata",
		Long: `Show name, size, modification time, extension and detected MIME type
for one or more files. Arguments may be glob patterns.

Missing files are reported and make the command exit with code 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")

	return cmd
}

// InfoResult is the metadata for one argument. Metadata is nil when the
// file does not exist.
type InfoResult struct {
	File     string              `json:"file" yaml:"file"`
	Found    bool                `json:"found" yaml:"found"`
	Metadata *filecheck.Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string, opts *InfoOptions) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := filecheck.ExpandPaths(args)
	if err != nil {
		return err
	}

	v := s.validator()
	results := make([]InfoResult, 0, len(files))
	missing := 0
	for _, f := range files {
		meta, ok := v.Info(f)
		if !ok {
			missing++
		}
		results = append(results, InfoResult{File: f, Found: ok, Metadata: meta})
	}

	w := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		err = writeJSON(w, results)
	case "yaml":
		err = yaml.NewEncoder(w).Encode(results)
	case "text", "":
		err = outputInfoText(w, results)
	default:
		return fmt.Errorf("invalid output format %q (must be text, json or yaml)", opts.Output)
	}
	if err != nil {
		return err
	}

	if missing > 0 {
		ExitCode = 1
	} else {
		ExitCode = 0
	}
	return nil
}

func outputInfoText(w io.Writer, results []InfoResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !r.Found {
			fmt.Fprintf(w, "%s: file not found\n", r.File)
			continue
		}

		m := r.Metadata
		fmt.Fprintf(w, "File:      %s\n", m.Path)
		fmt.Fprintf(w, "Name:      %s\n", m.Name)
		fmt.Fprintf(w, "Size:      %s (%d bytes, %.2f MB)\n", m.SizeHuman, m.Size, m.SizeMB)
		fmt.Fprintf(w, "Modified:  %s\n", m.Modified.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Extension: %s\n", m.Extension)
		fmt.Fprintf(w, "MIME type: %s\n", m.MIMEType)
	}
	return nil
}

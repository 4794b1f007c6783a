package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/format"
)

func newSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size <bytes>...",
		Short: "Format byte counts for display",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			args, help := numericArgs(args)
			if help {
				return cmd.Help()
			}
			for _, arg := range args {
				size, err := parseSize(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), size)
			}
			return nil
		},
		// Negative values such as -5 would otherwise parse as shorthand flags.
		DisableFlagParsing: true,
	}
}

func parseSize(arg string) (string, error) {
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return format.FormatSize(n), nil
	}
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsInf(f, 0) {
		return "", fmt.Errorf("size: %q is not a number", arg)
	}
	return format.FormatSize(f), nil
}

func newTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time <epoch-ms>...",
		Short: "Format epoch milliseconds as UTC date and time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			args, help := numericArgs(args)
			if help {
				return cmd.Help()
			}
			invalid := 0
			for _, arg := range args {
				ms, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					invalid++
					fmt.Fprintln(cmd.OutOrStdout(), format.InvalidDate)
					continue
				}
				text, err := format.FormatTimestamp(ms)
				if err != nil {
					invalid++
					text = format.InvalidDate
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			if invalid > 0 {
				return fmt.Errorf("time: %d of %d values are not valid timestamps", invalid, len(args))
			}
			return nil
		},
		DisableFlagParsing: true,
	}
}

// numericArgs prepares the raw arguments of a command that takes numbers and
// parses no flags. A leading "--" is dropped; -h or --help asks for help.
func numericArgs(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		switch {
		case arg == "--" && i == 0:
			continue
		case arg == "-h" || arg == "--help":
			return nil, true
		}
		out = append(out, arg)
	}
	return out, false
}

func newCapitalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capitalize <text>...",
		Short: "Uppercase the first character of each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), format.Capitalize(arg))
			}
			return nil
		},
	}
}

func newIsDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isdir <file_type>...",
		Short: "Report whether each file type denotes a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), files.IsDir(files.TypeName(arg)))
			}
			return nil
		},
	}
}

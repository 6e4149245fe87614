package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/mem/sso"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "string",
		Short: "Show where small strings move to the heap",
		Long: `The string command builds strings just below, at and above the inline
width, then appends, concatenates and clears. --n sets the length of the
appended text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runString(cmd)
		},
	})
}

func runString(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	spy := spyOn[byte]()

	for _, n := range []int{sso.InlineWidth - 2, sso.InlineWidth - 1, sso.InlineWidth} {
		s, err := sso.FromString(spy, strings.Repeat("x", n))
		if err != nil {
			return err
		}
		report(out, fmt.Sprintf("length %d: inline=%t cap=%d", n, s.IsInline(), s.Cap()), spy)
		s.Release()
		spy.Reset()
		spy.Trace(true)
	}

	s, err := sso.FromString(spy, "hello")
	if err != nil {
		return err
	}
	if err := s.Append([]byte(strings.Repeat("!", count))); err != nil {
		return err
	}
	report(out, fmt.Sprintf("append %d: len=%d inline=%t cap=%d", count, s.Len(), s.IsInline(), s.Cap()), spy)

	joined, err := s.ConcatChars([]byte(" world"))
	if err != nil {
		return err
	}
	report(out, fmt.Sprintf("concat: %q", joined.String()), spy)

	s.Clear()
	report(out, fmt.Sprintf("clear: len=%d cap=%d", s.Len(), s.Cap()), spy)

	s.Release()
	joined.Release()
	report(out, "release", spy)
	return nil
}

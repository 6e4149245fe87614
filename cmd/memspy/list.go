package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/mem/list"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Fill a list, remove matches, insert in the middle and clear it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	})
}

func runList(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	spy := spyOn[list.Element[int]]()
	l := list.New[int](spy)

	for i := 0; i < count; i++ {
		if err := l.PushBack(i % 3); err != nil {
			return err
		}
	}
	report(out, fmt.Sprintf("push %d: %v", count, slices.Collect(l.All())), spy)

	removed := list.Remove(l, 1)
	report(out, fmt.Sprintf("remove 1 (%d erased): %v", removed, slices.Collect(l.All())), spy)

	if _, err := l.InsertN(l.First(), 2, 9); err != nil {
		return err
	}
	report(out, fmt.Sprintf("insert 2x9 at front: %v", slices.Collect(l.All())), spy)

	c, err := l.Clone()
	if err != nil {
		return err
	}
	report(out, fmt.Sprintf("clone: len=%d", c.Len()), spy)

	c.Clear()
	l.Clear()
	report(out, "clear", spy)
	return nil
}

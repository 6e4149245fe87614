package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/mem/vector"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "vector",
		Short: "Push, resize, shrink, copy and move a vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVector(cmd)
		},
	})
}

func runVector(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	spy := spyOn[int]()
	v := vector.New[int](spy)

	for i := 0; i < count; i++ {
		if err := v.PushBack(i); err != nil {
			return err
		}
		fmt.Fprintf(out, "push %d: len=%d cap=%d\n", i, v.Len(), v.Cap())
	}
	report(out, fmt.Sprintf("push %d", count), spy)

	if err := v.Resize(count / 2); err != nil {
		return err
	}
	if err := v.ShrinkToFit(); err != nil {
		return err
	}
	report(out, fmt.Sprintf("resize %d + shrink: len=%d cap=%d", count/2, v.Len(), v.Cap()), spy)

	c, err := v.Clone()
	if err != nil {
		return err
	}
	report(out, fmt.Sprintf("clone: len=%d cap=%d", c.Len(), c.Cap()), spy)

	m := c.Move()
	report(out, fmt.Sprintf("move: source len=%d, target len=%d", c.Len(), m.Len()), spy)

	m.Release()
	v.Release()
	report(out, "release", spy)
	return nil
}

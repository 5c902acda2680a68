package main

import (
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <number> <operator> <number>",
	Short: "Evaluate one operation given as arguments, without prompting",
	Example: `  calc eval 4 + 5
  calc eval 10 / 4
  calc eval -- -3 '*' 2`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newSession(cmd).Eval(args[0], args[1], args[2])
		return reported(err)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

package main

import (
	"fmt"
	"os"

	treejson "github.com/pbanos/grove/tree/json"
	"github.com/spf13/cobra"
)

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Check and print the tree of a model",
		Long:  `Check the instance counts of the tree of a model and print it to STDOUT, either as an indented tree with the rules of every node or as JSON`,
		Run: func(cmd *cobra.Command, args []string) {
			v := rootConfig.v
			if v.GetString("model") == "" {
				fail(1, errRequired("model"), "invalid arguments")
			}
			ctx, cancel := rootConfig.context()
			defer cancel()
			src, err := rootConfig.source(ctx)
			if err != nil {
				fail(2, err, "opening source")
			}
			if src != nil {
				defer src.Close(ctx)
			}
			m, err := loadModel(ctx, src, v.GetString("model"))
			if err != nil {
				fail(3, err, "loading model")
			}
			if err = m.Tree().Validate(ctx); err != nil {
				fail(4, err, "checking tree")
			}
			if v.GetBool("json") {
				if err = treejson.WriteTree(ctx, m.Tree(), os.Stdout); err != nil {
					fail(5, err, "writing tree")
				}
				fmt.Println()
				return
			}
			fmt.Print(m.Tree())
		},
	}
	flags := cmd.Flags()
	flags.StringP("model", "m", "", "path to a file with the JSON definition of the model, or its id in the source (required)")
	flags.Bool("json", false, "print the tree in the JSON format of model definitions")
	return cmd
}

package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/pbanos/grove/dataset"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a model",
		Long:  `Test the performance of a model against a test dataset, writing the evaluation as JSON to STDOUT`,
		Run: func(cmd *cobra.Command, args []string) {
			v := rootConfig.v
			if v.GetString("model") == "" {
				fail(1, errRequired("model"), "invalid arguments")
			}
			opts, err := modelOptions(v)
			if err != nil {
				fail(1, err, "invalid arguments")
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
			testingSet, err := readDataset(ctx, v.GetString("input"))
			if err != nil {
				fail(4, err, "reading testing set")
			}
			count, err := testingSet.Count(ctx)
			if err != nil {
				fail(5, err, "counting testing set samples")
			}
			log.Info().Str("model", m.ID).Int("samples", count).Msg("testing model against testing set")
			evaluation, err := m.Test(ctx, testingSet, opts)
			if err != nil {
				fail(6, err, "testing model")
			}
			log.Info().Int("scored", evaluation.Scored).Int("unscored", evaluation.Unscored).Msg("done")
			if err = json.NewEncoder(os.Stdout).Encode(evaluation); err != nil {
				fail(7, err, "writing evaluation")
			}
		},
	}
	flags := cmd.Flags()
	flags.StringP("model", "m", "", "path to a file with the JSON definition of the model, or its id in the source (required)")
	flags.StringP("input", "i", "", "path to an input CSV (.csv) or JSON (.json) file with the testing set (defaults to STDIN, interpreted as CSV)")
	flags.Bool("by-name", true, "samples are keyed by field name instead of field id")
	flags.String("strategy", "last_prediction", "strategy for samples missing a split field (last_prediction or proportional)")
	return cmd
}

func readDataset(ctx context.Context, path string) (dataset.Dataset, error) {
	if path == "" || path == "-" {
		log.Debug().Msg("reading testing set from STDIN")
		return dataset.ReadCSV(ctx, os.Stdin)
	}
	if strings.HasSuffix(path, ".json") {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening testing set at %s", path)
		}
		defer f.Close()
		return dataset.ReadJSON(ctx, f)
	}
	return dataset.ReadCSVFromFilePath(ctx, path)
}

func errRequired(flag string) error {
	return errors.Errorf("required %s flag was not set", flag)
}

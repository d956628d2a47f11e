package main

import (
	"encoding/json"
	"os"

	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/tree"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the objective of input records with a model",
		Long:  `Use a model to predict the objective field of the input records, writing a JSON result per record to STDOUT`,
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
			inputs, err := readInputs(v.GetString("input"))
			if err != nil {
				fail(4, err, "reading input")
			}
			enc := json.NewEncoder(os.Stdout)
			for i, input := range inputs {
				r, err := m.Predict(ctx, input, opts)
				if err != nil {
					fail(5, err, "predicting")
				}
				log.Debug().Int("input", i).Str("prediction", r.Prediction.String()).Msg("prediction made")
				if err = enc.Encode(r); err != nil {
					fail(6, err, "writing result")
				}
			}
		},
	}
	flags := cmd.Flags()
	flags.StringP("model", "m", "", "path to a file with the JSON definition of the model, or its id in the source (required)")
	flags.Int("multiple", 0, "number of categories of the distribution to return as alternatives (-1 for all of them)")
	flags.Bool("next", false, "add the field the tree would split on next to the result")
	addPredictionFlags(flags)
	return cmd
}

// addPredictionFlags defines the flags shared by the commands that make
// predictions
func addPredictionFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", "", "path to a YAML or JSON file with an input record or a list of them (defaults to STDIN)")
	flags.Bool("by-name", true, "input records are keyed by field name instead of field id")
	flags.String("strategy", tree.LastPrediction.String(), "strategy for inputs missing a split field (last_prediction or proportional)")
	flags.Bool("confidence", true, "add the confidence to the result")
	flags.Bool("path", false, "add the rules of the path followed to the result")
	flags.Bool("distribution", false, "add the distribution of the prediction to the result")
	flags.Bool("count", false, "add the number of training instances of the prediction to the result")
	flags.Bool("median", false, "add the median to regression results")
	flags.Bool("min", false, "add the minimum to regression results")
	flags.Bool("max", false, "add the maximum to regression results")
}

func modelOptions(v *viper.Viper) (model.Options, error) {
	strategy, err := tree.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return model.Options{}, err
	}
	return model.Options{
		ByName:          v.GetBool("by-name"),
		Strategy:        strategy,
		Multiple:        v.GetInt("multiple"),
		AddConfidence:   v.GetBool("confidence"),
		AddPath:         v.GetBool("path"),
		AddDistribution: v.GetBool("distribution"),
		AddCount:        v.GetBool("count"),
		AddMedian:       v.GetBool("median"),
		AddMin:          v.GetBool("min"),
		AddMax:          v.GetBool("max"),
		AddNext:         v.GetBool("next"),
	}, nil
}

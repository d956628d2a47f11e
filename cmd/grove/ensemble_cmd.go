package main

import (
	"encoding/json"
	"os"

	"github.com/pbanos/grove/ensemble"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func ensembleCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "Predict the objective of input records with an ensemble",
		Long:  `Use an ensemble of models to predict the objective field of the input records combining the votes of its models, writing a JSON result per record to STDOUT`,
		Run: func(cmd *cobra.Command, args []string) {
			v := rootConfig.v
			if v.GetString("ensemble") == "" {
				fail(1, errRequired("ensemble"), "invalid arguments")
			}
			opts, err := ensembleOptions(v)
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
			e, err := loadEnsemble(ctx, src, v.GetString("ensemble"), ensemble.WithWorkers(v.GetInt("workers")))
			if err != nil {
				fail(3, err, "loading ensemble")
			}
			if v.GetBool("importance") {
				if err = json.NewEncoder(os.Stdout).Encode(e.FieldImportance()); err != nil {
					fail(6, err, "writing field importance")
				}
				return
			}
			inputs, err := readInputs(v.GetString("input"))
			if err != nil {
				fail(4, err, "reading input")
			}
			enc := json.NewEncoder(os.Stdout)
			for i, input := range inputs {
				r, err := e.Predict(ctx, input, opts)
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
	flags.StringP("ensemble", "e", "", "path to a file with the JSON definition of the ensemble, or its id in the source (required)")
	flags.String("method", ensemble.Plurality.String(), "method to combine the votes of the models (plurality, confidence, probability or threshold)")
	flags.Int("threshold-k", 1, "minimum number of votes for the threshold category with the threshold method")
	flags.String("threshold-category", "", "category voted with the threshold method")
	flags.Bool("use-median", false, "use the median of regression models as their vote")
	flags.Int("workers", 0, "maximum number of models evaluated at the same time (defaults to the number of CPUs)")
	flags.Bool("importance", false, "write the field importance of the ensemble instead of making predictions")
	addPredictionFlags(flags)
	return cmd
}

func ensembleOptions(v *viper.Viper) (ensemble.Options, error) {
	mopts, err := modelOptions(v)
	if err != nil {
		return ensemble.Options{}, err
	}
	method, err := ensemble.ParseMethod(v.GetString("method"))
	if err != nil {
		return ensemble.Options{}, err
	}
	return ensemble.Options{
		ByName:    mopts.ByName,
		Strategy:  mopts.Strategy,
		UseMedian: v.GetBool("use-median"),
		CombineOptions: ensemble.CombineOptions{
			Method:            method,
			ThresholdK:        v.GetInt("threshold-k"),
			ThresholdCategory: v.GetString("threshold-category"),
			AddConfidence:     mopts.AddConfidence,
			AddDistribution:   mopts.AddDistribution,
			AddCount:          mopts.AddCount,
			AddMedian:         mopts.AddMedian,
			AddMin:            mopts.AddMin,
			AddMax:            mopts.AddMax,
		},
	}, nil
}

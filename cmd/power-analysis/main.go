// power-analysis runs the full household power pipeline: load and clean the
// raw export, derive calendar features, explore the data, split train/test
// with a fixed seed, fit a regression tree and a feed-forward network, and
// report MAE/RMSE/R² for both on the held-out set.
//
// Usage:
//
//	power-analysis -input data/household_power_consumption.txt
//	power-analysis -seed 7 -nn-max-iter 50 -no-plots
//	power-analysis -listen :8090    # stream training progress over WebSocket
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"power_analysis/internal/chart"
	"power_analysis/internal/eval"
	"power_analysis/internal/explore"
	"power_analysis/internal/features"
	"power_analysis/internal/ingest"
	"power_analysis/internal/live"
	"power_analysis/internal/model"
	"power_analysis/internal/nn"
	"power_analysis/internal/split"
	"power_analysis/internal/store"
	"power_analysis/internal/tree"
)

func main() {
	treeDefaults := tree.DefaultConfig()
	nnDefaults := nn.DefaultConfig()

	input := flag.String("input", "data/household_power_consumption.txt", "path to the raw export")
	seed := flag.Uint64("seed", 123, "random seed for the split and network init")
	trainRatio := flag.Float64("train-ratio", 0.8, "fraction of rows used for training")
	treeCp := flag.Float64("tree-cp", treeDefaults.Cp, "min fraction of root SSE a split must remove")
	treeMinSplit := flag.Int("tree-minsplit", treeDefaults.MinSplit, "min rows in a splittable node")
	nnHidden := flag.Int("nn-hidden", nnDefaults.HiddenSize, "hidden layer size")
	nnMaxIter := flag.Int("nn-max-iter", nnDefaults.MaxIter, "training epochs")
	nnLR := flag.Float64("nn-lr", nnDefaults.LearningRate, "learning rate")
	nnBatch := flag.Int("nn-batch-size", nnDefaults.BatchSize, "mini-batch size")
	plotDir := flag.String("plot-dir", "plots", "directory for chart output")
	noPlots := flag.Bool("no-plots", false, "skip chart rendering")
	listen := flag.String("listen", "", "optional address for the live progress WebSocket (e.g. :8090)")
	flag.Parse()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	defer f.Close()

	parser := &ingest.PowerParser{}
	observations, stats, err := parser.Parse(f)
	if err != nil {
		log.Fatalf("parsing %s: %v", *input, err)
	}

	fmt.Printf("Loaded %d observations (%d of %d rows dropped for missing values)\n",
		len(observations), stats.Dropped, stats.Rows)

	if len(observations) < 2 {
		log.Fatalf("insufficient data: %d cleaned rows after dropping %d of %d (need at least 2)",
			len(observations), stats.Dropped, stats.Rows)
	}

	featurized := features.DeriveAll(observations)

	fmt.Println("\n=== Summary ===")
	explore.Describe(os.Stdout, featurized)

	fmt.Println("=== Correlation ===")
	corr, names, err := explore.CorrelationMatrix(featurized)
	if err != nil {
		log.Fatalf("computing correlation: %v", err)
	}
	explore.PrintCorrelation(os.Stdout, corr, names)

	var hub *live.Hub
	if *listen != "" {
		hub = live.NewHub()
		go func() {
			log.Printf("live progress on ws://%s", *listen)
			if err := http.ListenAndServe(*listen, live.NewHandler(hub)); err != nil {
				log.Printf("live listener: %v", err)
			}
		}()
	}

	if !*noPlots {
		renderExploratoryCharts(observations, featurized, *plotDir)
	}

	X, y := features.Matrix(featurized)

	trainIdx, testIdx, err := split.Split(len(X), *trainRatio, *seed)
	if err != nil {
		log.Fatalf("splitting dataset: %v", err)
	}
	fmt.Printf("\nSplit: %d training rows, %d test rows (seed %d)\n",
		len(trainIdx), len(testIdx), *seed)

	trainX := split.Gather(X, trainIdx)
	trainY := split.GatherTargets(y, trainIdx)
	testX := split.Gather(X, testIdx)
	testY := split.GatherTargets(y, testIdx)

	// Decision tree.
	treeCfg := tree.Config{Cp: *treeCp, MinSplit: *treeMinSplit}
	fitted, err := tree.Train(trainX, trainY, treeCfg)
	if err != nil {
		log.Fatalf("training tree: %v", err)
	}
	fmt.Printf("Tree: %d leaves (cp=%g minsplit=%d)\n", fitted.Leaves(), treeCfg.Cp, treeCfg.MinSplit)
	treePred := fitted.PredictAll(testX)

	// Neural network.
	nnCfg := nn.Config{
		HiddenSize:   *nnHidden,
		MaxIter:      *nnMaxIter,
		BatchSize:    *nnBatch,
		LearningRate: *nnLR,
		Beta1:        nnDefaults.Beta1,
		Beta2:        nnDefaults.Beta2,
		Epsilon:      nnDefaults.Epsilon,
	}
	if hub != nil {
		nnCfg.OnEpoch = func(epoch int, loss float64) {
			hub.BroadcastEpoch("nn", epoch, loss)
		}
	}

	regressor, losses, err := nn.Train(trainX, trainY, nnCfg, *seed)
	if err != nil {
		log.Fatalf("training network: %v", err)
	}
	fmt.Printf("NN: loss %.6f → %.6f over %d epochs (hidden=%d)\n",
		losses[0], losses[len(losses)-1], len(losses), nnCfg.HiddenSize)
	nnPred := regressor.PredictAll(testX)

	treeReport, err := eval.Evaluate(treePred, testY)
	if err != nil {
		log.Fatalf("evaluating tree: %v", err)
	}
	nnReport, err := eval.Evaluate(nnPred, testY)
	if err != nil {
		log.Fatalf("evaluating network: %v", err)
	}

	fmt.Println("\n=== Held-out metrics ===")
	printReport("Decision tree", treeReport)
	printReport("Neural network", nnReport)

	if hub != nil {
		broadcastReport(hub, "tree", treeReport)
		broadcastReport(hub, "nn", nnReport)
	}

	if !*noPlots {
		renderPredictionCharts(treePred, nnPred, testY, *plotDir)
	}
}

func printReport(name string, r eval.Report) {
	fmt.Printf("%-16s MAE %.4f   RMSE %.4f   ", name, r.MAE, r.RMSE)
	if r.R2Defined() {
		fmt.Printf("R² %.4f\n", r.R2)
	} else {
		fmt.Println("R² undefined (zero variance in test target)")
	}
}

func broadcastReport(hub *live.Hub, model string, r eval.Report) {
	var r2 *float64
	if r.R2Defined() {
		v := r.R2
		r2 = &v
	}
	hub.BroadcastReport(model, r.MAE, r.RMSE, r2)
}

func renderExploratoryCharts(observations []model.Observation, featurized []model.FeaturizedObservation, dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("creating plot directory: %v", err)
		return
	}

	s := store.New()
	s.Add(observations)

	if err := chart.DailySeries(s.DailyMeans(), filepath.Join(dir, "daily_power.png")); err != nil {
		log.Printf("rendering daily series: %v", err)
	}
	if err := chart.HourlyProfile(explore.HourlyProfile(featurized), filepath.Join(dir, "hourly_profile.png")); err != nil {
		log.Printf("rendering hourly profile: %v", err)
	}
}

func renderPredictionCharts(treePred, nnPred, testY []float64, dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("creating plot directory: %v", err)
		return
	}

	if err := chart.PredictedVsActual(treePred, testY, "Decision Tree", filepath.Join(dir, "tree_pred_vs_actual.png")); err != nil {
		log.Printf("rendering tree scatter: %v", err)
	}
	if err := chart.PredictedVsActual(nnPred, testY, "Neural Network", filepath.Join(dir, "nn_pred_vs_actual.png")); err != nil {
		log.Printf("rendering nn scatter: %v", err)
	}
}

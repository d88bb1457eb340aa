package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gorgonia/boltz"
	"github.com/gorgonia/boltz/encoding/curve"
	"github.com/gorgonia/boltz/encoding/gif"
	"github.com/gorgonia/boltz/internal/dataset"
	rbm "github.com/gorgonia/boltz/rbmnet"
	"gorgonia.org/tensor"
)

var (
	dataFile    = flag.String("data", "", "CSV file of training data. The iris data set is used if empty")
	hidden      = flag.Int("hidden", 3, "number of hidden units")
	visibleUnit = flag.String("visible-unit", "g", "visible unit type: b (bernoulli) or g (gaussian)")
	hiddenUnit  = flag.String("hidden-unit", "b", "hidden unit type: b (bernoulli) or g (gaussian)")
	sigma       = flag.Float64("sigma", 1, "standard deviation of gaussian units")
	learnRate   = flag.Float64("lr", 0.01, "learning rate")
	momentum    = flag.Float64("momentum", 0.95, "momentum, in [0, 1]")
	xavier      = flag.Float64("xavier", 1, "xavier initialization constant")
	errMode     = flag.String("err", "mse", "reconstruction error: mse or cosine")
	scale       = flag.Bool("scale", true, "min-max scale every column into [0, 1]")
	binarize    = flag.Float64("binarize", -1, "if >= 0, binarize the (scaled) data at this threshold")

	epochs  = flag.Int("epochs", 10, "number of epochs")
	batch   = flag.Int("batch", 10, "batch size. <= 0 trains on the whole data set at once")
	shuffle = flag.Bool("shuffle", true, "shuffle the data every epoch")
	verbose = flag.Bool("verbose", true, "log the error of every epoch")
	seed    = flag.Int64("seed", 0, "random seed. 0 seeds from the clock")

	name      = flag.String("name", "rbm", "name the weights are saved under")
	out       = flag.String("out", "rbm.weights", "file to save the weights into. Empty to not save")
	load      = flag.String("load", "", "file to load initial weights from")
	gifFile   = flag.String("gif", "", "if set, write an animation of the weights to this file")
	tileH     = flag.Int("tileh", 0, "height of a weight tile in the gif")
	tileW     = flag.Int("tilew", 0, "width of a weight tile in the gif")
	plotFile  = flag.String("plot", "", "if set, plot the error curve to this file")
	statsFile = flag.String("stats", "", "if set, dump the batch errors as CSV to this file")
	dotFile   = flag.String("dot", "", "if set, write the trained network as a graphviz file")
)

func loadData() (*tensor.Dense, error) {
	if *dataFile == "" {
		data, _, err := dataset.Iris()
		return data, err
	}
	f, err := os.Open(*dataFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.LoadCSV(f)
}

func main() {
	flag.Parse()

	data, err := loadData()
	if err != nil {
		log.Fatalf("Unable to load data: %+v", err)
	}
	if *scale {
		if err = dataset.MinMax(data); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	if *binarize >= 0 {
		dataset.Binarize(data, float32(*binarize))
	}

	nnConf := rbm.DefaultConf(data.Shape()[1], *hidden)
	if nnConf.VisibleUnit, err = rbm.ParseUnitType(*visibleUnit); err != nil {
		log.Fatal(err)
	}
	if nnConf.HiddenUnit, err = rbm.ParseUnitType(*hiddenUnit); err != nil {
		log.Fatal(err)
	}
	if nnConf.Err, err = rbm.ParseErrorMode(*errMode); err != nil {
		log.Fatal(err)
	}
	nnConf.Sigma = float32(*sigma)
	nnConf.LearnRate = float32(*learnRate)
	nnConf.Momentum = float32(*momentum)
	nnConf.XavierConst = float32(*xavier)

	conf := boltz.Config{
		Name:    *name,
		NNConf:  nnConf,
		FitConf: rbm.DefaultFitConf(),
		Seed:    *seed,

		LogWriter: os.Stderr,
	}
	conf.FitConf.Epochs = *epochs
	conf.FitConf.BatchSize = *batch
	conf.FitConf.Shuffle = *shuffle
	conf.FitConf.Verbose = *verbose

	var encs boltz.MultiEncoder
	if *gifFile != "" {
		f, err := os.Create(*gifFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		encs = append(encs, gif.NewGifEncoder(f, *tileH, *tileW))
	}
	if *plotFile != "" {
		encs = append(encs, curve.New(*plotFile, *name))
	}
	if len(encs) > 0 {
		conf.OutputEncoder = encs
	}

	t, err := boltz.New(conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if *load != "" {
		if err = t.Load(*load); err != nil {
			log.Fatalf("%+v", err)
		}
		log.Printf("Loaded %q from %v", *name, *load)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Training on %v samples of %d features", data.Shape()[0], data.Shape()[1])
	errs, err := t.Learn(ctx, data)
	if err != nil {
		log.Printf("Training stopped after %d batches: %v", len(errs), err)
	}
	if len(t.EpochErrors) > 0 {
		log.Printf("Final epoch error %.4f", t.EpochErrors[len(t.EpochErrors)-1])
	}

	if *statsFile != "" {
		if err := t.Dump(*statsFile); err != nil {
			log.Printf("Unable to dump statistics: %v", err)
		}
	}
	if *dotFile != "" {
		dot, err := t.Model().ToDot()
		if err != nil {
			log.Printf("Unable to render graph: %v", err)
		} else if err = os.WriteFile(*dotFile, []byte(dot), 0644); err != nil {
			log.Printf("Unable to write graph: %v", err)
		}
	}
	if *out != "" {
		if err := t.Save(*out); err != nil {
			log.Fatalf("%+v", err)
		}
		log.Printf("Saved %q to %v", *name, *out)
	}
}

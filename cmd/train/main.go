package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"attriscope/ml"
)

func main() {
	dataPath := flag.String("data", "", "training CSV path")
	modelsDir := flag.String("models_dir", "./models", "artifact output directory")
	testRatio := flag.Float64("test_ratio", 0.2, "held-out test ratio")
	learningRate := flag.Float64("learning_rate", 0.1, "gradient descent learning rate")
	epochs := flag.Int("epochs", 2000, "training epochs")
	seed := flag.Int64("seed", 42, "shuffle seed for the split")
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("data is required")
	}

	profiles, labels, err := ml.LoadDataset(*dataPath)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	log.Printf("loaded %d rows from %s", len(profiles), *dataPath)

	features, featureNames, err := ml.BuildTrainingMatrix(profiles)
	if err != nil {
		log.Fatalf("failed to build training matrix: %v", err)
	}

	trainX, trainY, testX, testY := ml.SplitDataset(features, labels, *testRatio, *seed)

	scaler := &ml.StandardScaler{}
	if err := scaler.Fit(trainX); err != nil {
		log.Fatalf("failed to fit scaler: %v", err)
	}
	scaledTrain, err := transformAll(scaler, trainX)
	if err != nil {
		log.Fatalf("failed to scale training data: %v", err)
	}
	scaledTest, err := transformAll(scaler, testX)
	if err != nil {
		log.Fatalf("failed to scale test data: %v", err)
	}

	model := ml.NewLogisticRegression(*learningRate, *epochs)
	if err := model.Train(scaledTrain, trainY); err != nil {
		log.Fatalf("failed to train model: %v", err)
	}

	accuracy, precision, recall := ml.EvaluateModel(model, scaledTest, testY)
	log.Printf("accuracy=%.2f precision=%.2f recall=%.2f", accuracy, precision, recall)

	if err := os.MkdirAll(*modelsDir, 0o755); err != nil {
		log.Fatalf("failed to create models dir: %v", err)
	}
	if err := model.Save(filepath.Join(*modelsDir, ml.ModelFile)); err != nil {
		log.Fatalf("failed to save model: %v", err)
	}
	if err := scaler.Save(filepath.Join(*modelsDir, ml.ScalerFile)); err != nil {
		log.Fatalf("failed to save scaler: %v", err)
	}
	if err := ml.SaveFeatureNames(filepath.Join(*modelsDir, ml.FeatureNamesFile), featureNames); err != nil {
		log.Fatalf("failed to save feature names: %v", err)
	}

	fmt.Printf("artifacts saved to %s\n", *modelsDir)
}

func transformAll(scaler *ml.StandardScaler, rows [][]float64) ([][]float64, error) {
	out := make([][]float64, 0, len(rows))
	for _, row := range rows {
		scaled, err := scaler.Transform(row)
		if err != nil {
			return nil, err
		}
		out = append(out, scaled)
	}
	return out, nil
}

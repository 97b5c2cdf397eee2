// Package scitree provides binary decision trees for Go: classification on
// two classes with the Gini criterion and regression with the sum of
// squared residuals.
//
// Trees are grown by recursive partitioning over a fixed feature schema.
// Binary string features split on equality with one level, numeric features
// on a midpoint threshold. A fitted tree predicts raw records, reading only
// the features tested along the path, or gonum matrices through the
// scikit-learn style estimators.
//
// # Installation
//
//	go get github.com/YuminosukeSato/scitree
//
// # Quick Start
//
// Fitting a tree on a CSV file:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/scitree/dataset"
//	    "github.com/YuminosukeSato/scitree/tree"
//	)
//
//	func main() {
//	    file, err := os.Open("weather.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer file.Close()
//
//	    f, err := dataset.ReadCSV(file, "play", dataset.Classification)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    t, err := tree.New(f, tree.Config{MaxDepth: 3, MinSamplesSplit: 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := t.Fit(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p, err := t.Predict(dataset.Sample{"outlook": "sunny", "temp": "21"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", p.Class)
//	}
//
// # Packages
//
//   - dataset: frames, row views, CSV, SQL table and YAML schema ingestion
//   - tree: impurity functions, split search, tree builder and predictor
//   - sklearn/tree: DecisionTreeClassifier and DecisionTreeRegressor over gonum/mat
//   - metrics: regression and binary classification metrics
//   - viz: Graphviz DOT export and feature importance charts
//   - core/model: estimator interfaces and fitted state management
//   - core/parallel: parallel batch prediction
//   - pkg/errors, pkg/log: structured errors and logging
//
// # scikit-learn Compatibility
//
//	clf := tree.NewDecisionTreeClassifier(
//	    tree.WithMaxDepth(5),
//	    tree.WithMinSamplesSplit(2),
//	)
//	if err := clf.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	acc, err := clf.Score(XTest, yTest)
//
// # Command Line
//
//	scitree fit --data weather.csv --label play --dot tree.dot
//	scitree fit --data weather.db --table weather --label play --profile prof/
//	scitree predict --data weather.csv --label play --input new.csv
//
// # License
//
// scitree is released under the MIT License.
package scitree

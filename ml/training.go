package ml

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"attriscope/hr"
)

// LoadDataset reads an HR attrition CSV. The header must carry the six profile
// columns plus an Attrition column ("Yes"/"No"); extra columns are ignored.
func LoadDataset(path string) ([]hr.Profile, []int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	required := []string{
		ColAge, ColMonthlyIncome, ColYearsAtCompany,
		"OverTime", ColJobSatisfaction, ColWorkLifeBalance, "Attrition",
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", name)
		}
	}

	var profiles []hr.Profile
	var labels []int
	line := 1
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		line++

		profile := hr.Profile{
			OverTime: strings.TrimSpace(record[index["OverTime"]]),
		}
		for _, field := range []struct {
			name string
			dst  *int
		}{
			{ColAge, &profile.Age},
			{ColMonthlyIncome, &profile.MonthlyIncome},
			{ColYearsAtCompany, &profile.YearsAtCompany},
			{ColJobSatisfaction, &profile.JobSatisfaction},
			{ColWorkLifeBalance, &profile.WorkLifeBalance},
		} {
			*field.dst, err = atoiField(record, index[field.name])
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: column %s: %w", line, field.name, err)
			}
		}

		label := 0
		switch strings.TrimSpace(record[index["Attrition"]]) {
		case "Yes", "yes", "1":
			label = 1
		case "No", "no", "0":
			label = 0
		default:
			return nil, nil, fmt.Errorf("line %d: unrecognized attrition value", line)
		}

		profiles = append(profiles, profile)
		labels = append(labels, label)
	}

	if len(profiles) == 0 {
		return nil, nil, errors.New("dataset has no rows")
	}
	return profiles, labels, nil
}

func atoiField(record []string, idx int) (int, error) {
	return strconv.Atoi(strings.TrimSpace(record[idx]))
}

// BuildTrainingMatrix encodes and aligns every profile against the canonical
// column list, returning the matrix together with the column names.
func BuildTrainingMatrix(profiles []hr.Profile) ([][]float64, []string, error) {
	if len(profiles) == 0 {
		return nil, nil, errors.New("profiles is empty")
	}
	names := TrainingColumns()
	matrix := make([][]float64, len(profiles))
	for i, profile := range profiles {
		row, err := Align(EncodeProfile(profile), names)
		if err != nil {
			return nil, nil, err
		}
		matrix[i] = row
	}
	return matrix, names, nil
}

func SplitDataset(features [][]float64, labels []int, testRatio float64, seed int64) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(len(features))

	split := int(float64(len(features)) * (1 - testRatio))
	for i, idx := range indices {
		if i < split {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, labels[idx])
		} else {
			testX = append(testX, features[idx])
			testY = append(testY, labels[idx])
		}
	}
	return trainX, trainY, testX, testY
}

func EvaluateModel(model Classifier, testX [][]float64, testY []int) (accuracy, precision, recall float64) {
	if len(testX) == 0 {
		return 0, 0, 0
	}

	var correct int
	var truePositive int
	var predictedPositive int
	var actualPositive int

	for i, features := range testX {
		label, _, err := model.Predict(features)
		if err != nil {
			continue
		}
		if label == testY[i] {
			correct++
		}
		if label == 1 {
			predictedPositive++
		}
		if testY[i] == 1 {
			actualPositive++
			if label == 1 {
				truePositive++
			}
		}
	}

	accuracy = float64(correct) / float64(len(testX))
	if predictedPositive > 0 {
		precision = float64(truePositive) / float64(predictedPositive)
	}
	if actualPositive > 0 {
		recall = float64(truePositive) / float64(actualPositive)
	}
	return accuracy, precision, recall
}

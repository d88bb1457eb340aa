package boltz

import (
	"encoding/csv"
	"os"
	"strconv"
)

// Record is the reconstruction error of one batch.
type Record struct {
	Epoch, Batch int
	Error        float32
}

// Statistics records the errors of a training run.
type Statistics struct {
	Records     []Record
	EpochErrors []float32 // mean error of each epoch
}

func makeStatistics() Statistics {
	return Statistics{
		Records:     make([]Record, 0, 64),
		EpochErrors: make([]float32, 0, 8),
	}
}

func (s *Statistics) recordBatch(epoch, batch int, err float32) {
	s.Records = append(s.Records, Record{Epoch: epoch, Batch: batch, Error: err})
}

func (s *Statistics) recordEpoch(epoch int, err float32) {
	s.EpochErrors = append(s.EpochErrors, err)
}

// Dump writes the batch errors as a CSV file with the columns epoch, batch, error.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"epoch", "batch", "error"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Records))
	for _, r := range s.Records {
		records = append(records, []string{
			strconv.Itoa(r.Epoch),
			strconv.Itoa(r.Batch),
			strconv.FormatFloat(float64(r.Error), 'f', 6, 32),
		})
	}
	// WriteAll flushes
	return w.WriteAll(records)
}

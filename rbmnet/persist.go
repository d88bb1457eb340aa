package rbm

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// weightsFile is what SaveWeights writes: the weights, keyed by <name>_w, <name>_v and <name>_h.
type weightsFile struct {
	Tensors map[string]*tensor.Dense
}

func weightKeys(name string) (w, v, h string) { return name + "_w", name + "_v", name + "_h" }

// SaveWeights writes the weight matrix and both biases to filename under the given name,
// and returns the path written. The momentum accumulators are not saved.
func (m *RBM) SaveWeights(filename, name string) (string, error) {
	wk, vk, hk := weightKeys(name)
	wf := weightsFile{Tensors: map[string]*tensor.Dense{
		wk: m.w,
		vk: m.vb,
		hk: m.hb,
	}}

	dir := filepath.Dir(filename)
	f, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp*")
	if err != nil {
		return "", errors.Wrapf(ErrIO, "unable to create %v: %v", filename, err)
	}
	tmpName := f.Name()

	enc := gob.NewEncoder(f)
	if err = enc.Encode(&wf); err != nil {
		f.Close()
		os.Remove(tmpName)
		return "", errors.Wrapf(ErrIO, "unable to encode weights %q: %v", name, err)
	}
	if err = f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmpName)
		return "", errors.Wrapf(ErrIO, "unable to write %v: %v", filename, err)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(ErrIO, "unable to write %v: %v", filename, err)
	}
	if err = os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(ErrIO, "unable to write %v: %v", filename, err)
	}
	return filename, nil
}

// LoadWeights restores the weights saved under name in filename.
//
// The load is all or nothing: if the file is missing, the name is not found or a shape
// does not match the model, the model keeps its current parameters. On success the
// momentum accumulators are reset to zero.
func (m *RBM) LoadWeights(filename, name string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(ErrIO, "%v", err)
	}
	defer f.Close()

	var wf weightsFile
	dec := gob.NewDecoder(f)
	if err = dec.Decode(&wf); err != nil {
		return errors.Wrapf(ErrIO, "unable to decode %v: %v", filename, err)
	}

	wk, vk, hk := weightKeys(name)
	var ts [3]*tensor.Dense
	for i, k := range []string{wk, vk, hk} {
		t, ok := wf.Tensors[k]
		if !ok || t == nil {
			return errors.Wrapf(ErrIO, "%v has no tensor named %q", filename, k)
		}
		ts[i] = t
	}

	w, vb, hb, err := m.checkParams(ts[0], ts[1], ts[2])
	if err != nil {
		return errors.Wrapf(ErrIO, "%v: %v", filename, err)
	}
	m.w, m.vb, m.hb = w, vb, hb
	m.ResetMomentum()
	return nil
}

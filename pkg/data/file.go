package data

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"sortbench/pkg/common"
)

// Dataset files carry an 8-byte little-endian record count followed by
// the records themselves, packed with no padding: keys are 4 or 8 bytes
// depending on the dataset type, values are always 8 bytes.

func keyWidth[K common.Key]() int64 {
	var zero K
	return int64(binary.Size(zero))
}

// LoadKeys reads a raw key vector from a dataset file.
func LoadKeys[K common.Key](filename string) ([]K, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("data: open %s: %w", filename, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("data: stat %s: %w", filename, err)
	}

	r := bufio.NewReader(f)
	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("data: read size of %s: %w", filename, err)
	}
	if want := 8 + int64(size)*keyWidth[K](); want != stat.Size() {
		return nil, fmt.Errorf("data: %s: %d keys need %d bytes, file has %d",
			filename, size, want, stat.Size())
	}

	keys := make([]K, size)
	if err := binary.Read(r, binary.LittleEndian, keys); err != nil {
		return nil, fmt.Errorf("data: read keys of %s: %w", filename, err)
	}
	return keys, nil
}

// WriteKeys writes a raw key vector to a dataset file.
func WriteKeys[K common.Key](keys []K, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("data: create %s: %w", filename, err)
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(keys))); err != nil {
		f.Close()
		return fmt.Errorf("data: write size of %s: %w", filename, err)
	}
	if err := binary.Write(w, binary.LittleEndian, keys); err != nil {
		f.Close()
		return fmt.Errorf("data: write keys of %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("data: flush %s: %w", filename, err)
	}
	return f.Close()
}

// LoadRecords reads key-value records from a dataset file.
func LoadRecords[K common.Key](filename string) ([]common.KeyValue[K], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("data: open %s: %w", filename, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("data: stat %s: %w", filename, err)
	}

	r := bufio.NewReader(f)
	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("data: read size of %s: %w", filename, err)
	}
	if want := 8 + int64(size)*(keyWidth[K]()+8); want != stat.Size() {
		return nil, fmt.Errorf("data: %s: %d records need %d bytes, file has %d",
			filename, size, want, stat.Size())
	}

	records := make([]common.KeyValue[K], size)
	for i := range records {
		if err := binary.Read(r, binary.LittleEndian, &records[i].Key); err != nil {
			return nil, fmt.Errorf("data: read record %d of %s: %w", i, filename, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &records[i].Value); err != nil {
			return nil, fmt.Errorf("data: read record %d of %s: %w", i, filename, err)
		}
	}
	return records, nil
}

// WriteRecords writes key-value records to a dataset file.
func WriteRecords[K common.Key](records []common.KeyValue[K], filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("data: create %s: %w", filename, err)
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(records))); err != nil {
		f.Close()
		return fmt.Errorf("data: write size of %s: %w", filename, err)
	}
	for i, kv := range records {
		if err := binary.Write(w, binary.LittleEndian, kv.Key); err != nil {
			f.Close()
			return fmt.Errorf("data: write record %d of %s: %w", i, filename, err)
		}
		if err := binary.Write(w, binary.LittleEndian, kv.Value); err != nil {
			f.Close()
			return fmt.Errorf("data: write record %d of %s: %w", i, filename, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("data: flush %s: %w", filename, err)
	}
	return f.Close()
}

package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/engine"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File answers from a flat answers file. The format follows the extension:
// .yaml/.yml, .json or .toml.
type File struct {
	FS   afero.Fs
	Path string

	values map[string]string
}

// NewFile creates a File resolver reading path from fs
func NewFile(fs afero.Fs, path string) *File {
	return &File{FS: fs, Path: path}
}

// Resolve implements Resolver. The file is read on first use.
func (f *File) Resolve(_ context.Context, names []string) (engine.Variables, error) {
	if f.values == nil {
		values, err := f.load()
		if err != nil {
			return nil, err
		}
		f.values = values
	}
	return pick(f.values, names), nil
}

func (f *File) load() (map[string]string, error) {
	logger := logging.GetLogger("resolver")

	data, err := afero.ReadFile(f.FS, f.Path)
	if err != nil {
		return nil, errors.IOFailure(err, "read", f.Path)
	}

	raw := map[string]interface{}{}
	switch ext := strings.ToLower(filepath.Ext(f.Path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported answers file %s, use .yaml, .json or .toml", f.Path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse answers file %s", f.Path).
			WithDetail(errors.DetailPath, f.Path)
	}

	values := make(map[string]string, len(raw))
	for name, v := range raw {
		s, err := scalar(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "answers file %s", f.Path).
				WithDetail(errors.DetailVariable, name)
		}
		values[name] = s
	}

	logger.Debug().Str("path", f.Path).Int("values", len(values)).Msg("Loaded answers file")
	return values, nil
}

// scalar renders a decoded value as the text substituted into the template
func scalar(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int, int64, uint64:
		return fmt.Sprint(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case map[string]interface{}, []interface{}:
		return "", fmt.Errorf("value must be a string, number or boolean, got %T", v)
	default:
		return fmt.Sprint(t), nil
	}
}

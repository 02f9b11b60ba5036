package pipeline

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/matzehuels/papg/pkg/arena"
	perrors "github.com/matzehuels/papg/pkg/errors"
	pgio "github.com/matzehuels/papg/pkg/io"
	"github.com/matzehuels/papg/pkg/observability"
)

// Load reads a game file. A missing file returns FILE_NOT_FOUND; any parse
// or validation failure returns INVALID_GAME.
func (r *Runner) Load(ctx context.Context, path string) (*arena.Arena, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	a, err := pgio.ImportFile(path)
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, time.Since(start), err)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "load %s", path)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidGame, err, "load %s", path)
	}
	hooks.OnLoadComplete(ctx, path, a.Size(), time.Since(start), nil)
	r.Logger.Debug("loaded game", "path", path, "vertices", a.Size(), "edges", a.EdgeCount())
	return a, nil
}

// Decode parses a game from r. Decode errors return INVALID_GAME.
func Decode(ctx context.Context, r io.Reader, f pgio.Format) (*arena.Arena, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, string(f))
	start := time.Now()

	a, err := pgio.Read(r, f)
	if err != nil {
		hooks.OnLoadComplete(ctx, string(f), 0, time.Since(start), err)
		return nil, perrors.Wrap(perrors.ErrCodeInvalidGame, err, "decode %s game", f)
	}
	hooks.OnLoadComplete(ctx, string(f), a.Size(), time.Since(start), nil)
	return a, nil
}

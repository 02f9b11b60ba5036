package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/observability"
	"github.com/matzehuels/papg/pkg/render"
	"github.com/matzehuels/papg/pkg/render/nodelink"
)

// Render draws a solved game in the requested format, returning a cached
// diagram when one exists. A nil res renders the game without colours.
func (r *Runner) Render(ctx context.Context, a *arena.Arena, res *Result, opts RenderOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	hash, err := GameHash(a)
	if err != nil {
		return nil, err
	}
	keyOpts := opts.KeyOpts()
	if res == nil {
		keyOpts.Measures = false
		hash = "unsolved:" + hash
	}
	key := r.Keyer.RenderKey(hash, keyOpts)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := Render(ctx, a, res, opts)
	if err != nil {
		return nil, err
	}
	r.store(ctx, "render", key, data)
	return data, nil
}

// Render draws a game without caching. Options must already be validated.
func Render(ctx context.Context, a *arena.Arena, res *Result, opts RenderOptions) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(opts.Format))
	start := time.Now()

	data, err := renderFormat(ctx, a, res, opts)
	hooks.OnRenderComplete(ctx, string(opts.Format), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return data, nil
}

func renderFormat(ctx context.Context, a *arena.Arena, res *Result, opts RenderOptions) ([]byte, error) {
	dotOpts := nodelink.Options{Detailed: opts.Detailed}
	if res != nil {
		dotOpts.Winners = res.Winners
		if opts.Measures {
			dotOpts.Measures = res.Measures
		}
	}
	dot := nodelink.ToDOT(a, dotOpts)

	switch opts.Format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

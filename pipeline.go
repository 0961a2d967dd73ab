package ledheader

import (
	"context"
	"sync"
)

type job struct {
	index int
	asset Asset
}

type jobError struct {
	index int
	err   error
}

func (e *jobError) Error() string {
	return e.err.Error()
}

func (c *Converter) findAssets(ctx context.Context, assets []Asset) <-chan job {
	out := make(chan job)
	go func() {
		defer close(out)
		for i, a := range assets {
			select {
			case out <- job{index: i, asset: a}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// assetWorker loads every asset it receives, storing the result at the
// asset's index. Any failure cancels ctx so no further assets are handed out
// but the worker carries on until in is drained.
func (c *Converter) assetWorker(cancel context.CancelFunc, m *Manifest, in <-chan job, results []Loaded) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			l, err := c.load(m, j.asset)
			if err != nil {
				cancel()
				errc <- &jobError{index: j.index, err: err}
				continue
			}
			results[j.index] = l
		}
	}()
	return errc
}

// waitForPipeline drains every error channel and returns the error from the
// earliest asset in the manifest, if any. Assets are handed out in order so
// every asset before the one that failed first has been loaded.
func waitForPipeline(errs ...<-chan error) error {
	var first *jobError
	for err := range mergeErrors(errs...) {
		e, ok := err.(*jobError)
		if !ok {
			e = &jobError{index: -1, err: err}
		}
		if first == nil || e.index < first.index {
			first = e
		}
	}
	if first == nil {
		return nil
	}
	return first.err
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (c *Converter) loadAll(m *Manifest) ([]Loaded, error) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	results := make([]Loaded, len(m.Images))

	workers := c.workers
	if workers > len(m.Images) {
		workers = len(m.Images)
	}

	jobs := c.findAssets(ctx, m.Images)

	var errcList []<-chan error
	for i := 0; i < workers; i++ {
		errcList = append(errcList, c.assetWorker(cancelFunc, m, jobs, results))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	return results, nil
}

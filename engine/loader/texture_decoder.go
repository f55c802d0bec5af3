package loader

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// decodeQueueSize bounds the number of textures waiting for a decode worker.
const decodeQueueSize = 64

// decodeTextures decodes every source on a worker pool. Results are returned in source
// order. All sources are attempted; the returned error joins every failure.
//
// Parameters:
//   - sources: the textures to decode; nil entries produce empty TextureData
//   - workers: maximum concurrent decodes
//
// Returns:
//   - []common.TextureData: decoded pixels, one per source
//   - error: joined decode errors, or nil
func decodeTextures(sources []*common.TextureSource, workers int) ([]common.TextureData, error) {
	out := make([]common.TextureData, len(sources))
	if len(sources) == 0 {
		return out, nil
	}

	pool := worker.NewDynamicWorkerPool(workers, decodeQueueSize, time.Second)
	defer pool.Stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, src := range sources {
		if src == nil {
			continue
		}
		wg.Add(1)
		idx, s := i, src
		pool.SubmitTask(worker.Task{
			ID:      idx,
			Payload: s.Name,
			Do: func() (result any, err error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("texture %q: decoder panic: %v", s.Name, r)
						mu.Lock()
						errs = append(errs, err)
						mu.Unlock()
					}
				}()

				data, err := s.Decode()
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return nil, err
				}
				out[idx] = data
				return data, nil
			},
		})
	}
	wg.Wait()

	return out, errors.Join(errs...)
}

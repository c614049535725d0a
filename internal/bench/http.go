package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// fetchCatalog retrieves the selectable models and the arbiter.
func fetchCatalog(ctx context.Context, client *HTTPClient, baseURL string) (Catalog, error) {
	resp, err := client.Get(ctx, baseURL+"/models")
	if err != nil {
		return Catalog{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Catalog{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var catalog Catalog
	if err := unmarshalJSON(body, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(catalog.Models) == 0 {
		return Catalog{}, fmt.Errorf("catalog is empty")
	}

	return catalog, nil
}

// submitSubmissions runs the workload concurrently using worker pools
// and returns one result per submission, in workload order.
func submitSubmissions(ctx context.Context, config *Config, submissions []Submission, stats *Stats) ([]Result, error) {
	log.Printf("📤 Submitting %d simulations with %d workers...", len(submissions), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/simulations"

	results := make([]Result, len(submissions))

	// Counters for statistics
	var (
		succeeded int64
		rejected  int64
		failed    int64
		submitted int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSubmission(ctx, client, url, submissions[index])
					results[index] = result

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch {
					case result.Status == StatusOK:
						atomic.AddInt64(&succeeded, 1)
					case result.Status == StatusBadRequest:
						atomic.AddInt64(&rejected, 1)
						if config.Verbose {
							log.Printf("⚠️  Submission %s rejected", submissions[index].RunID)
						}
					default:
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						ok := atomic.LoadInt64(&succeeded)
						rej := atomic.LoadInt64(&rejected)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (ok: %d, rejected: %d, failed: %d)",
								total, len(submissions), ok, rej, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (ok: %d, rejected: %d, failed: %d)",
								total, len(submissions), ok, rej, fail)
						}
					}
				}
			}
		}()
	}

	// Send workload indices to workers
	go func() {
		defer close(indexChan)
		for i := range submissions {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.SimsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SimsSucceeded = int(atomic.LoadInt64(&succeeded))
	stats.SimsRejected = int(atomic.LoadInt64(&rejected))
	stats.SimsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Simulation submission completed:
   Succeeded: %d
   Rejected: %d
   Failed: %d
`, stats.SimsSucceeded, stats.SimsRejected, stats.SimsFailed)

	return results, nil
}

// submitSingleSubmission submits one simulation and captures the result.
func submitSingleSubmission(ctx context.Context, client *HTTPClient, url string, sub Submission) Result {
	result := Result{Submission: sub}

	resp, err := client.Post(ctx, url, sub)
	if err != nil {
		return result
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return result
	}
	result.Status = resp.StatusCode

	if resp.StatusCode == StatusOK {
		if err := unmarshalJSON(body, &result.Envelope); err != nil {
			// A 200 with an undecodable body counts as a failure
			result.Status = 0
		}
	}

	return result
}

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// scenario is one kind of ledger request the workers send
type scenario struct {
	Name string
	Path string
	Body func(from, to int) any
}

// result is the outcome of a single request
type result struct {
	Scenario     string
	StatusCode   int
	ResponseTime time.Duration
	Err          error
}

type stats struct {
	mu            sync.Mutex
	total         int
	succeeded     int
	responseTimes []time.Duration
	statusCounts  map[int]int
	errorCounts   map[string]int
	scenarioCount map[string]int
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userIDsStr := flag.String("u", "1,2,3", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	userIDs := parseIDs(*userIDsStr)
	if len(userIDs) < 2 {
		fmt.Println("at least two user ids are needed for transfers")
		return
	}

	scenarios := []scenario{
		{"topup", "/api/topups", func(from, _ int) any {
			return map[string]any{"user_id": from, "topup_no": "LT-" + uuid.NewString(), "topup_amount": 100000, "topup_method": "load-test"}
		}},
		{"transfer", "/api/transfers", func(from, to int) any {
			return map[string]any{"transfer_from": from, "transfer_to": to, "transfer_amount": 50000}
		}},
		{"withdraw", "/api/withdraws", func(from, _ int) any {
			return map[string]any{"user_id": from, "withdraw_amount": 50001, "withdraw_time": time.Now().UTC().Format(time.RFC3339)}
		}},
	}

	fmt.Printf("Load testing %s across users %v\n", *baseURL, userIDs)
	fmt.Printf("Concurrency: %d, requests: %d, delay: %d ms\n", *concurrency, *totalRequests, *delayMs)

	st := &stats{
		total:         *totalRequests,
		statusCounts:  make(map[int]int),
		errorCounts:   make(map[string]int),
		scenarioCount: make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	client := &http.Client{Timeout: 10 * time.Second}
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
				from, to := pickPair(userIDs)
				sc := scenarios[rand.Intn(len(scenarios))]
				st.record(send(client, *baseURL, sc, from, to))
			}
		}()
	}
	wg.Wait()

	printResults(st, time.Since(start))
	printBalances(client, *baseURL, userIDs)
}

func parseIDs(raw string) []int {
	var ids []int
	for _, s := range strings.Split(raw, ",") {
		var id int
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &id); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func pickPair(ids []int) (int, int) {
	i := rand.Intn(len(ids))
	j := rand.Intn(len(ids) - 1)
	if j >= i {
		j++
	}
	return ids[i], ids[j]
}

func send(client *http.Client, baseURL string, sc scenario, from, to int) result {
	payload, err := json.Marshal(sc.Body(from, to))
	if err != nil {
		return result{Scenario: sc.Name, Err: err}
	}

	begin := time.Now()
	resp, err := client.Post(baseURL+sc.Path, "application/json", bytes.NewReader(payload))
	elapsed := time.Since(begin)
	if err != nil {
		return result{Scenario: sc.Name, ResponseTime: elapsed, Err: err}
	}
	defer resp.Body.Close()

	r := result{Scenario: sc.Name, StatusCode: resp.StatusCode, ResponseTime: elapsed}
	if resp.StatusCode >= 300 {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		r.Err = fmt.Errorf("%s: %d %s", sc.Name, resp.StatusCode, body.Message)
	}
	return r
}

func (s *stats) record(r result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarioCount[r.Scenario]++
	s.responseTimes = append(s.responseTimes, r.ResponseTime)
	if r.StatusCode != 0 {
		s.statusCounts[r.StatusCode]++
	}
	if r.Err != nil {
		s.errorCounts[r.Err.Error()]++
		return
	}
	s.succeeded++
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[min(len(sorted)*p/100, len(sorted)-1)]
}

func printResults(s *stats, elapsed time.Duration) {
	times := slices.Clone(s.responseTimes)
	slices.Sort(times)

	var sum time.Duration
	for _, d := range times {
		sum += d
	}
	var avg time.Duration
	if len(times) > 0 {
		avg = sum / time.Duration(len(times))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", s.total)
	fmt.Printf("Successful Requests: %d\n", s.succeeded)
	fmt.Printf("Failed Requests:     %d\n", s.total-s.succeeded)
	fmt.Printf("Total Test Time:     %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Throughput:          %.2f req/s\n", float64(s.total)/elapsed.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average: %v  P50: %v  P90: %v  P99: %v\n",
		avg, percentile(times, 50), percentile(times, 90), percentile(times, 99))

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for code, count := range s.statusCounts {
		fmt.Printf("%d: %d\n", code, count)
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range s.scenarioCount {
		fmt.Printf("%-10s: %d\n", name, count)
	}

	if len(s.errorCounts) > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range s.errorCounts {
			fmt.Printf("%-60s: %d\n", msg, count)
		}
	}
}

// printBalances shows the final totals. Every total must be at or above the floor.
func printBalances(client *http.Client, baseURL string, userIDs []int) {
	fmt.Println("\n----------------- FINAL BALANCES -----------------")
	for _, id := range userIDs {
		resp, err := client.Get(fmt.Sprintf("%s/api/saldos/user/%d", baseURL, id))
		if err != nil {
			fmt.Printf("user %d: %v\n", id, err)
			continue
		}

		var body struct {
			Data struct {
				TotalBalance int64 `json:"total_balance"`
			} `json:"data"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			fmt.Printf("user %d: status %d\n", id, resp.StatusCode)
			continue
		}
		fmt.Printf("user %d: %d\n", id, body.Data.TotalBalance)
	}
}

// Command localauth-loadtest soaks the engine against a Redis backend:
// it seeds a batch of credentials, then drives concurrent login and
// bootstrap phases and prints latency percentiles plus the engine's own
// metrics snapshot.
//
// With no -redis-addr flag (and no REDIS_ADDR env), an embedded
// miniredis instance is used.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/localauth/localauth"
)

func main() {
	var (
		users       = flag.Int("users", 1000, "number of credentials to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 20000, "operations per phase (login + bootstrap)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		cleanup = func() {}
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	engine, err := localauth.New().
		WithRedis(client).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	usernames := make([]string, *users)
	fmt.Printf("seeding %d credentials...\n", *users)
	startSeed := time.Now()
	for i := 0; i < *users; i++ {
		usernames[i] = fmt.Sprintf("user-%d", i)
		if err := engine.Register(ctx, usernames[i], passwordFor(i), passwordFor(i)); err != nil {
			fmt.Fprintf(os.Stderr, "seed register failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	loginStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		idx := r.Intn(len(usernames))
		_, err := engine.Login(ctx, usernames[idx], passwordFor(idx))
		return err
	})

	bootstrapStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		engine.Bootstrap(ctx)
		return nil
	})

	fmt.Println("---- results ----")
	printStats("login", loginStats)
	printStats("bootstrap", bootstrapStats)

	snap := engine.MetricsSnapshot()
	fmt.Println("---- engine metrics ----")
	fmt.Printf("login_success=%d login_failure=%d registration_success=%d session_restored=%d write_failed=%d read_malformed=%d\n",
		snap.Counters[localauth.MetricLoginSuccess],
		snap.Counters[localauth.MetricLoginFailure],
		snap.Counters[localauth.MetricRegistrationSuccess],
		snap.Counters[localauth.MetricSessionRestored],
		snap.Counters[localauth.MetricPersistenceWriteFailed],
		snap.Counters[localauth.MetricPersistenceReadMalformed],
	)
	if buckets, ok := snap.Histograms[localauth.MetricBootstrapLatency]; ok {
		fmt.Printf("bootstrap_latency_buckets=%v\n", buckets)
	}
	if dropped := engine.AuditDropped(); dropped > 0 {
		fmt.Printf("audit_dropped=%d\n", dropped)
	}
}

func passwordFor(i int) string {
	return fmt.Sprintf("password-%d", i)
}

func runPhase(ops, concurrency int, op func(r *rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

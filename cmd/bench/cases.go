// README: Benchmark test cases; conversation scenarios plus HTTP, DB, Redis, and performance checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "DB reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "Redis reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "Optionally apply migration SQL",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "Tables from migrations/0001_init.sql are present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "API: health",
			Focus: "Server responds",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				resp, err := r.httpc.Get(base + "/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				_ = resp.Body.Close()
				if resp.StatusCode != 200 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name:  "Session: create",
			Focus: "POST /api/sessions returns an ID",
			Run: func(ctx context.Context, r *Runner) Result {
				id, res := r.createSession(ctx)
				if res != nil {
					return *res
				}
				return Result{Status: "PASS", Note: "id=" + id}
			},
		},
		{
			Name:  "Chat: unknown session -> 404",
			Focus: "Analysis rejects unknown sessions",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.analyze(ctx, "abc123abc123abc123abc123abc12301", "flight to Tokyo")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != 404 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Chat: missing fields -> 400",
			Focus: "Request validation",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.postJSON(ctx, base+"/api/chat/analyze", map[string]any{})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != 400 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Chat: flight search asks for missing details",
			Focus: "First turn yields intent, destination, clarification",
			Run:   scenarioFirstTurn,
		},
		{
			Name:  "Chat: follow-up completes the requirements",
			Focus: "Context accumulates across turns; state reaches searching",
			Run:   scenarioMultiTurn,
		},
		{
			Name:  "Chat: ambiguous destination asks which one",
			Focus: "Two destinations in one message trigger a choice",
			Run:   scenarioAmbiguousDestination,
		},
		{
			Name:  "Session: context endpoint reflects the fold",
			Focus: "GET context after a turn",
			Run:   scenarioContextEndpoint,
		},
		{
			Name:  "Session: messages endpoint returns history",
			Focus: "GET messages after two turns",
			Run:   scenarioMessagesEndpoint,
		},
		{
			Name:  "DB: messages persisted",
			Focus: "chat_messages rows exist for an analyzed session",
			Run:   scenarioMessagesPersisted,
		},
		{
			Name:  "Redis: session keys present",
			Focus: "meta and context keys exist with TTL",
			Run:   scenarioRedisKeys,
		},
		{
			Name:  "Concurrency: parallel turns on one session",
			Focus: "No lost messages under concurrent analyze calls",
			Run:   scenarioConcurrentTurns,
		},
		{
			Name:  "Perf: analyze throughput",
			Focus: "Sustained analysis requests",
			Run: func(ctx context.Context, r *Runner) Result {
				id, res := r.createSession(ctx)
				if res != nil {
					return *res
				}
				return perfLoad(ctx, r, base+"/api/chat/analyze", map[string]any{
					"session_id": id,
					"message":    "I want to visit Tokyo next week with 2 adults",
				})
			},
		},
	}
}

// createSession posts to /api/sessions and returns the new session ID, or a
// failure Result.
func (r *Runner) createSession(ctx context.Context) (string, *Result) {
	status, body, err := r.postJSON(ctx, r.cfg.BaseURL+"/api/sessions", nil)
	if err != nil {
		return "", &Result{Status: "FAIL", Note: err.Error()}
	}
	if status != 201 {
		return "", &Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
	}
	var sess struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &sess); err != nil || sess.ID == "" {
		return "", &Result{Status: "FAIL", Note: "no session id in response"}
	}
	return sess.ID, nil
}

type analyzeResponse struct {
	Intent struct {
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
	} `json:"intent"`
	Context struct {
		State         string          `json:"state"`
		Entities      map[string]json.RawMessage `json:"entities"`
		MissingFields []string        `json:"missing_fields"`
	} `json:"context"`
	Clarification *struct {
		Question string   `json:"question"`
		Type     string   `json:"type"`
		Options  []string `json:"options"`
	} `json:"clarification"`
}

func (r *Runner) analyze(ctx context.Context, sessionID, message string) (int, *analyzeResponse, error) {
	status, body, err := r.postJSON(ctx, r.cfg.BaseURL+"/api/chat/analyze", map[string]any{
		"session_id": sessionID,
		"message":    message,
	})
	if err != nil {
		return 0, nil, err
	}
	if status != 200 {
		return status, nil, nil
	}
	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return status, nil, err
	}
	return status, &resp, nil
}

func (r *Runner) postJSON(ctx context.Context, url string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

func (r *Runner) getJSON(ctx context.Context, url string) (int, []byte, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

func scenarioFirstTurn(ctx context.Context, r *Runner) Result {
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	start := time.Now()
	status, resp, err := r.analyze(ctx, id, "I need a flight to Tokyo")
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if status != 200 || resp == nil {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
	}
	if resp.Intent.Type != "search_flight" {
		return Result{Status: "FAIL", Note: "intent=" + resp.Intent.Type}
	}
	if _, ok := resp.Context.Entities["destination"]; !ok {
		return Result{Status: "FAIL", Note: "no destination entity"}
	}
	if resp.Clarification == nil {
		return Result{Status: "FAIL", Note: "expected clarification"}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func scenarioMultiTurn(ctx context.Context, r *Runner) Result {
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	if status, _, err := r.analyze(ctx, id, "I need a flight to Tokyo"); err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("turn 1 status=%d err=%v", status, err)}
	}
	status, resp, err := r.analyze(ctx, id, "2 adults, leaving next week")
	if err != nil || status != 200 || resp == nil {
		return Result{Status: "FAIL", Note: fmt.Sprintf("turn 2 status=%d err=%v", status, err)}
	}
	if len(resp.Context.MissingFields) != 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("missing=%v", resp.Context.MissingFields)}
	}
	if resp.Context.State != "searching" {
		return Result{Status: "FAIL", Note: "state=" + resp.Context.State}
	}
	return Result{Status: "PASS"}
}

func scenarioAmbiguousDestination(ctx context.Context, r *Runner) Result {
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	status, resp, err := r.analyze(ctx, id, "I want to visit Paris or Rome")
	if err != nil || status != 200 || resp == nil {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	if resp.Clarification == nil || resp.Clarification.Type != "single_choice" {
		return Result{Status: "FAIL", Note: "expected single_choice clarification"}
	}
	if len(resp.Clarification.Options) < 2 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("options=%v", resp.Clarification.Options)}
	}
	return Result{Status: "PASS"}
}

func scenarioContextEndpoint(ctx context.Context, r *Runner) Result {
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	if status, _, err := r.analyze(ctx, id, "hotel in Kyoto"); err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("analyze status=%d err=%v", status, err)}
	}
	status, body, err := r.getJSON(ctx, r.cfg.BaseURL+"/api/sessions/"+id+"/context")
	if err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	var c struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(body, &c); err != nil || c.State == "" {
		return Result{Status: "FAIL", Note: "no state in context"}
	}
	return Result{Status: "PASS"}
}

func scenarioMessagesEndpoint(ctx context.Context, r *Runner) Result {
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	for _, msg := range []string{"I need a flight to Tokyo", "next week"} {
		if status, _, err := r.analyze(ctx, id, msg); err != nil || status != 200 {
			return Result{Status: "FAIL", Note: fmt.Sprintf("analyze status=%d err=%v", status, err)}
		}
	}
	status, body, err := r.getJSON(ctx, r.cfg.BaseURL+"/api/sessions/"+id+"/messages")
	if err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	var resp struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if len(resp.Messages) != 2 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("messages=%d", len(resp.Messages))}
	}
	return Result{Status: "PASS"}
}

func scenarioMessagesPersisted(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: "FAIL", Note: "db not configured"}
	}
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	if status, _, err := r.analyze(ctx, id, "flight to Osaka"); err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("analyze status=%d err=%v", status, err)}
	}
	var count int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM chat_messages WHERE session_id=$1", id,
	).Scan(&count); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if count == 0 {
		return Result{Status: "FAIL", Note: "no rows"}
	}
	return Result{Status: "PASS"}
}

func scenarioRedisKeys(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: "FAIL", Note: "redis not configured"}
	}
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	if status, _, err := r.analyze(ctx, id, "flight to Osaka"); err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("analyze status=%d err=%v", status, err)}
	}
	for _, key := range []string{
		fmt.Sprintf("session:%s:meta", id),
		fmt.Sprintf("session:%s:context", id),
	} {
		ttl, err := r.redis.TTL(ctx, key).Result()
		if err != nil {
			return Result{Status: "FAIL", Note: err.Error()}
		}
		if ttl <= 0 {
			return Result{Status: "FAIL", Note: "missing or unexpiring key: " + key}
		}
	}
	return Result{Status: "PASS"}
}

func scenarioConcurrentTurns(ctx context.Context, r *Runner) Result {
	id, res := r.createSession(ctx)
	if res != nil {
		return *res
	}
	n := r.cfg.Concurrency
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _, err := r.analyze(ctx, id, fmt.Sprintf("flight to Tokyo please %d", i))
			if err != nil || status != 200 {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if failures > 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("failures=%d", failures)}
	}
	status, body, err := r.getJSON(ctx, r.cfg.BaseURL+"/api/sessions/"+id+"/messages")
	if err != nil || status != 200 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	var resp struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if len(resp.Messages) != n {
		return Result{Status: "FAIL", Note: fmt.Sprintf("messages=%d want %d", len(resp.Messages), n)}
	}
	return Result{Status: "PASS"}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	cleaned := strings.Join(filtered, "\n")
	parts := strings.Split(cleaned, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

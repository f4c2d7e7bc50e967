//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/etczermerivil/Rgb-bnb/internal/adapters/auth"
	server "github.com/etczermerivil/Rgb-bnb/internal/adapters/http_server"
	"github.com/etczermerivil/Rgb-bnb/internal/app"
	mysqlrepo "github.com/etczermerivil/Rgb-bnb/internal/storage/mysql"
)

// ---------- helpers ----------

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// noCache satisfies the cache port without a running Redis.
type noCache struct{}

func (noCache) Get(ctx context.Context, key string, dest any) (bool, error) { return false, nil }
func (noCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (noCache) Del(ctx context.Context, key string) error { return nil }

type client struct {
	t    *testing.T
	base string
}

func (c *client) do(method, path, token string, body any) (*http.Response, map[string]json.RawMessage) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	out := map[string]json.RawMessage{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

func str(raw json.RawMessage) string {
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}

// ---------- the test ----------

func TestHTTP_EndToEnd_BookingLifecycle(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=rgbbnb",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/rgbbnb?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	// Real wiring except the cache
	repo := mysqlrepo.New(db)
	tokens := auth.New("e2e-secret", time.Hour)
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Spots:    app.NewSpotService(repo, repo, repo, noCache{}, time.Minute),
		Bookings: app.NewBookingService(repo, repo, repo),
		Reviews:  app.NewReviewService(repo, repo, repo, noCache{}),
		Users:    repo,
		Auth:     tokens,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()
	c := &client{t: t, base: ts.URL}

	// signup both parties
	res, body := c.do("POST", "/api/users", "", map[string]any{
		"firstName": "Olive", "lastName": "Owner",
		"email": "olive@example.com", "username": "olive", "password": "secret99",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("owner signup status %d: %v", res.StatusCode, body)
	}
	ownerTok := str(body["token"])

	res, body = c.do("POST", "/api/users", "", map[string]any{
		"firstName": "Gary", "lastName": "Guest",
		"email": "gary@example.com", "username": "gary", "password": "secret99",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("guest signup status %d: %v", res.StatusCode, body)
	}
	guestTok := str(body["token"])

	// owner lists a spot and attaches a preview image
	res, body = c.do("POST", "/api/spots", ownerTok, map[string]any{
		"address": "99 Lakeview Dr", "city": "Tahoe City", "state": "CA", "country": "USA",
		"lat": 39.17, "lng": -120.14, "name": "Lakehouse", "description": "on the water", "price": 250.0,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create spot status %d: %v", res.StatusCode, body)
	}
	var spotID int64
	_ = json.Unmarshal(body["id"], &spotID)

	spotPath := fmt.Sprintf("/api/spots/%d", spotID)
	res, _ = c.do("POST", spotPath+"/images", ownerTok, map[string]any{"url": "https://x/lake.jpg", "preview": true})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("add image status %d", res.StatusCode)
	}

	// guest books, then a conflicting booking is refused end to end
	res, body = c.do("POST", spotPath+"/bookings", guestTok, map[string]any{
		"startDate": "2031-07-01", "endDate": "2031-07-08",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("booking status %d: %v", res.StatusCode, body)
	}
	var bookingID int64
	_ = json.Unmarshal(body["id"], &bookingID)

	res, body = c.do("POST", spotPath+"/bookings", ownerTok, map[string]any{
		"startDate": "2031-07-05", "endDate": "2031-07-10",
	})
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("conflict status %d: %v", res.StatusCode, body)
	}
	if str(body["message"]) != "Sorry, this spot is already booked for the specified dates" {
		t.Fatalf("conflict message %q", str(body["message"]))
	}

	// guest reviews the spot; the detail read reflects the aggregate
	res, _ = c.do("POST", spotPath+"/reviews", guestTok, map[string]any{"review": "Stunning view", "stars": 5})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("review status %d", res.StatusCode)
	}

	res, body = c.do("GET", spotPath, "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("spot detail status %d", res.StatusCode)
	}
	if string(body["numReviews"]) != "1" || string(body["avgStarRating"]) != "5.0" {
		t.Fatalf("detail aggregates: numReviews=%s avg=%s", body["numReviews"], body["avgStarRating"])
	}

	// guest sees the booking with the spot preview attached
	res, body = c.do("GET", "/api/bookings/current", guestTok, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("current bookings status %d", res.StatusCode)
	}
	var bookings []map[string]json.RawMessage
	_ = json.Unmarshal(body["Bookings"], &bookings)
	if len(bookings) != 1 {
		t.Fatalf("want 1 booking, got %d", len(bookings))
	}

	// guest cancels before the start date
	res, body = c.do("DELETE", fmt.Sprintf("/api/bookings/%d", bookingID), guestTok, nil)
	if res.StatusCode != http.StatusOK || str(body["message"]) != "Successfully deleted" {
		t.Fatalf("delete booking status %d: %v", res.StatusCode, body)
	}

	// and the previously conflicting range is now bookable
	res, _ = c.do("POST", spotPath+"/bookings", ownerTok, map[string]any{
		"startDate": "2031-07-05", "endDate": "2031-07-10",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("rebook status %d", res.StatusCode)
	}
}

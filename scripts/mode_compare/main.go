// Command mode_compare signs in to two console instances, one running in
// mock mode and one against the real backend, and diffs the data each
// returns for the same reads.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"
	"time"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
)

type target struct {
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

var defaultTargets = []target{
	{Path: "/me", Critical: true},
	{Path: "/students", Critical: true},
	{Path: "/teachers", Critical: true},
	{Path: "/parents"},
	{Path: "/attendance/student/student1?range=all", Critical: true},
	{Path: "/exam-results"},
	{Path: "/queries"},
	{Path: "/fees?student_id=student1"},
}

type instance struct {
	name   string
	client *gateway.Client
	scope  gateway.Scope
}

type outcome struct {
	status   int
	data     interface{}
	duration time.Duration
	err      error
}

type comparison struct {
	target target
	mock   outcome
	real   outcome
	match  bool
}

func main() {
	var (
		mockBase    string
		realBase    string
		targetsPath string
		email       string
		password    string
		school      string
		timeout     time.Duration
	)

	flag.StringVar(&mockBase, "mock-base", "http://localhost:8080/api", "console running with API_MODE=mock")
	flag.StringVar(&realBase, "real-base", "http://localhost:8081/api", "console running with API_MODE=real")
	flag.StringVar(&targetsPath, "targets", "", "optional JSON file with a targets array")
	flag.StringVar(&email, "email", "admin@stmarys.edu", "login email")
	flag.StringVar(&password, "password", "admin123", "login password")
	flag.StringVar(&school, "school", "stmarys", "school domain")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per request timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	ctx := context.Background()
	creds := models.LoginRequest{Email: email, Password: password, SchoolDomain: school}
	mock, err := signIn(ctx, "mock", mockBase, timeout, creds)
	if err != nil {
		log.Fatalf("mock instance: %v", err)
	}
	remote, err := signIn(ctx, "real", realBase, timeout, creds)
	if err != nil {
		log.Fatalf("real instance: %v", err)
	}

	var (
		results  []comparison
		breaking int
		optional int
	)
	for _, t := range targets {
		res := comparison{target: t, mock: fetch(ctx, mock, t.Path), real: fetch(ctx, remote, t.Path)}
		res.match = res.mock.err == nil && res.real.err == nil &&
			res.mock.status == res.real.status && reflect.DeepEqual(res.mock.data, res.real.data)
		if !res.match {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func signIn(ctx context.Context, name, base string, timeout time.Duration, creds models.LoginRequest) (*instance, error) {
	client := gateway.NewClient(base, timeout)
	scope := gateway.Scope{Tenant: models.TenantKey(creds.SchoolDomain)}

	var env struct {
		Data models.LoginResponse `json:"data"`
	}
	if err := client.Post(ctx, scope, "/login", creds, &env); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	scope.Token = env.Data.AccessToken
	return &instance{name: name, client: client, scope: scope}, nil
}

// fetch reads one path and keeps only the envelope's data; meta carries
// the mode and timings, which always differ.
func fetch(ctx context.Context, in *instance, path string) outcome {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	start := time.Now()
	err := in.client.Get(ctx, in.scope, path, nil, &env)
	out := outcome{status: 200, duration: time.Since(start)}

	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		out.status = statusErr.Status
		return out
	}
	if err != nil {
		out.err = err
		return out
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out.data); err != nil {
			out.err = fmt.Errorf("decode data: %w", err)
			return out
		}
		dropGeneratedFields(out.data)
	}
	return out
}

// dropGeneratedFields removes values each instance mints on its own.
func dropGeneratedFields(v interface{}) {
	switch val := v.(type) {
	case map[string]interface{}:
		delete(val, "created_at")
		for _, child := range val {
			dropGeneratedFields(child)
		}
	case []interface{}:
		for _, child := range val {
			dropGeneratedFields(child)
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Mode Compare Report")
	fmt.Println("===================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.mock.err != nil || res.real.err != nil:
			status = "ERROR"
		case !res.match:
			status = "DIFF"
		}
		fmt.Printf("[%s] GET %s\n", status, res.target.Path)
		fmt.Printf("  mock: %d (%s)\n", res.mock.status, res.mock.duration)
		fmt.Printf("  real: %d (%s)\n", res.real.status, res.real.duration)
		for _, err := range []error{res.mock.err, res.real.err} {
			if err != nil {
				fmt.Printf("  error: %v\n", err)
			}
		}
		if status == "DIFF" {
			fmt.Printf("  critical: %t\n", res.target.Critical)
		}
	}
}

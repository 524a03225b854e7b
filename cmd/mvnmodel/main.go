// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command mvnmodel builds the effective Maven model for a single
// coordinate and prints its resolved properties and dependencies.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ctrueden/go-maven-model/enumerate"
	"github.com/ctrueden/go-maven-model/env"
	"github.com/ctrueden/go-maven-model/log"
	"github.com/ctrueden/go-maven-model/maven"
)

type config struct {
	coordinate   string
	configPath   string
	remoteURLs   string
	verbose      bool
	transitive   bool
	outputFormat string
}

func main() {
	cfg := parseFlags()

	if cfg.verbose {
		log.SetLogger(&log.StdLogger{Verbose: true})
	}

	c, err := parseComponent(cfg.coordinate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mvnmodel: %v\n", err)
		os.Exit(1)
	}

	e, err := buildEnvironment(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mvnmodel: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.transitive {
		nodes, err := enumerate.Enumerate(ctx, e, c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mvnmodel: %v\n", err)
			os.Exit(1)
		}
		printJSON(nodes)
		return
	}

	m, err := e.BuildComponent(ctx, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mvnmodel: %v\n", err)
		os.Exit(1)
	}
	// Model's maps are keyed by a struct, which encoding/json cannot encode
	// as an object key, so the dependency maps are printed as ordered lists.
	printJSON(struct {
		Properties           map[string]string
		Dependencies         []maven.Dependency
		DependencyManagement []maven.Dependency
	}{m.Props, m.OrderedDeps(), m.OrderedDepMgmt()})
}

func parseFlags() *config {
	cfg := &config{}
	flag.StringVar(&cfg.coordinate, "coordinate", "", "Maven coordinate to build, as group:artifact:version")
	flag.StringVar(&cfg.configPath, "config", "", "Path to a TOML environment config (default: built-in defaults)")
	flag.StringVar(&cfg.remoteURLs, "remotes", "https://repo.maven.apache.org/maven2", "Comma-separated remote repository base URLs")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Verbose logging")
	flag.BoolVar(&cfg.transitive, "transitive", false, "Print the transitive dependency closure instead of the flat model")
	flag.StringVar(&cfg.outputFormat, "format", "json", "Output format (only json is supported)")
	flag.Parse()
	return cfg
}

func parseComponent(s string) (maven.Component, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return maven.Component{}, fmt.Errorf("invalid coordinate %q, want group:artifact:version", s)
	}
	return maven.Component{
		Project: maven.Project{Group: fields[0], Artifact: fields[1]},
		Version: fields[2],
	}, nil
}

func buildEnvironment(cfg *config) (*env.Environment, error) {
	if cfg.configPath != "" {
		c, err := env.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, err
		}
		return env.NewFromConfig(c)
	}
	var remotes []string
	if cfg.remoteURLs != "" {
		remotes = strings.Split(cfg.remoteURLs, ",")
	}
	return env.NewDefault(remotes)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "mvnmodel: encoding output: %v\n", err)
		os.Exit(1)
	}
}

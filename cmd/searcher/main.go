// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/policymatch"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	svc, err := policymatch.NewService("./policy_db")
	if err != nil {
		panic(err)
	}
	defer svc.Close()

	ctx := context.Background()
	if err := svc.Rebuild(ctx); err != nil {
		panic(err)
	}

	query := "자립준비청년 주거"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}
	results := svc.Search(ctx, query, nil, 5)

	fmt.Printf("Found %d hits (%s)\n", len(results), svc.State())
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%s)[%0.3f]\n", i, hit.Record.ServiceName, hit.Record.Category.Label(), hit.CombinedScore)
	}
}

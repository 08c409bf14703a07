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


// Package search provides semantic and tag-based search over insights.
//
// The Searcher type implements two complementary query modes:
//   - Semantic search: the query text is embedded and compared against
//     every stored insight vector by cosine similarity
//   - Tag search: insights are matched by their resolved tag sets, with
//     any-of or all-of semantics
//
// A SearchMonitor can observe each stage of a semantic search; the CLI
// uses this for its verbose mode.
package search

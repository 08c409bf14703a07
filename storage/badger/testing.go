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


package badger

import "github.com/sentinelkb/sentinel/storage"

// NewMemoryRepositories creates in-memory capture, insight and tag
// repositories for testing. Caller must close the repos and backend
// when done.
func NewMemoryRepositories() (storage.CaptureRepository, storage.InsightRepository, storage.TagRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	captureRepo, err := NewCaptureRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	insightRepo, err := NewInsightRepository(backend)
	if err != nil {
		captureRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	tagRepo, err := NewTagRepository(backend)
	if err != nil {
		insightRepo.Close()
		captureRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return captureRepo, insightRepo, tagRepo, backend, nil
}

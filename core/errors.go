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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPolicyRecord indicates a PolicyRecord failed validation.
	ErrInvalidPolicyRecord = errors.New("invalid policy record")

	// ErrInvalidUserProfile indicates a UserProfile failed validation.
	ErrInvalidUserProfile = errors.New("invalid user profile")

	// ErrEmptyPolicy indicates a record has no searchable text at all.
	ErrEmptyPolicy = errors.New("policy has no searchable text")

	// ErrInvalidCategory indicates an unknown Category value.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidAge indicates an age outside the accepted range.
	ErrInvalidAge = errors.New("invalid age")

	// ErrInvalidSupportNeed indicates a need outside the controlled vocabulary.
	ErrInvalidSupportNeed = errors.New("invalid support need")
)

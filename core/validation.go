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

import (
	"fmt"
	"strings"
)

// MaxAge is the largest age accepted on a profile.
const MaxAge = 120

// ValidatePolicyRecord validates a PolicyRecord according to domain rules.
//
// Validation rules:
//   - At least one of ServiceName, TargetDescription, SupportContent must be non-blank
//   - Category must be known or empty
//
// NOT validated:
//   - ID (0 is valid until storage assigns one)
//   - AgencyName, ApplicationMethod (optional)
func ValidatePolicyRecord(record *PolicyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidPolicyRecord)
	}

	if strings.TrimSpace(record.ServiceName) == "" &&
		strings.TrimSpace(record.TargetDescription) == "" &&
		strings.TrimSpace(record.SupportContent) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPolicyRecord, ErrEmptyPolicy)
	}

	if err := ValidateCategory(record.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicyRecord, err)
	}

	return nil
}

// ValidateCategory validates that a Category has a known value.
// The empty category is accepted.
func ValidateCategory(c Category) error {
	switch c {
	case CategoryUnknown, CategoryCentral, CategoryLocal, CategoryPrivate:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

// ValidateUserProfile validates a UserProfile according to domain rules.
//
// Validation rules:
//   - Age must be between 0 (unknown) and MaxAge
//   - Every support need must come from the controlled vocabulary
func ValidateUserProfile(profile *UserProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidUserProfile)
	}

	if profile.Age < 0 || profile.Age > MaxAge {
		return fmt.Errorf("%w: %w: %d", ErrInvalidUserProfile, ErrInvalidAge, profile.Age)
	}

	for _, need := range profile.SupportNeeds {
		if needLabels[need] == "" {
			return fmt.Errorf("%w: %w: %q", ErrInvalidUserProfile, ErrInvalidSupportNeed, string(need))
		}
	}

	return nil
}

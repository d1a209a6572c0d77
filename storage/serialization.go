package storage

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/poiesic/policymatch/core"
)

// MarshalID serializes an ID to bytes using big-endian encoding.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: expected 8 bytes for ID, got %d", ErrTruncatedData, len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// MarshalPolicyRecord serializes a PolicyRecord to bytes.
func MarshalPolicyRecord(record *core.PolicyRecord) ([]byte, error) {
	buf := make([]byte, core.PolicyRecordMUS.Size(*record))
	core.PolicyRecordMUS.Marshal(*record, buf)
	return buf, nil
}

// UnmarshalPolicyRecord deserializes a PolicyRecord from bytes.
func UnmarshalPolicyRecord(data []byte) (*core.PolicyRecord, error) {
	record, _, err := core.PolicyRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if len(record.Metadata) == 0 {
		record.Metadata = nil
	}
	return &record, nil
}

// MarshalUserProfile serializes a UserProfile to bytes.
func MarshalUserProfile(profile *core.UserProfile) ([]byte, error) {
	buf := make([]byte, core.UserProfileMUS.Size(*profile))
	core.UserProfileMUS.Marshal(*profile, buf)
	return buf, nil
}

// UnmarshalUserProfile deserializes a UserProfile from bytes.
func UnmarshalUserProfile(data []byte) (*core.UserProfile, error) {
	profile, _, err := core.UserProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if len(profile.SupportNeeds) == 0 {
		profile.SupportNeeds = nil
	}
	profile.UpdatedAt = normalizeTime(profile.UpdatedAt)
	return &profile, nil
}

// MarshalBuildInfo serializes a BuildInfo to bytes.
func MarshalBuildInfo(info *core.BuildInfo) ([]byte, error) {
	buf := make([]byte, core.BuildInfoMUS.Size(*info))
	core.BuildInfoMUS.Marshal(*info, buf)
	return buf, nil
}

// UnmarshalBuildInfo deserializes a BuildInfo from bytes.
func UnmarshalBuildInfo(data []byte) (*core.BuildInfo, error) {
	info, _, err := core.BuildInfoMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	info.BuiltAt = normalizeTime(info.BuiltAt)
	return &info, nil
}

// MarshalVector packs a vector as little-endian float32 values.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// UnmarshalVector unpacks a vector written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: vector payload of %d bytes", ErrTruncatedData, len(data))
	}
	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return vector, nil
}

// normalizeTime maps decoded timestamps to UTC so the zero time stays zero.
func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}

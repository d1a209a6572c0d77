package badger

import (
	"errors"
)

// Repositories bundles every repository sharing one Backend.
type Repositories struct {
	Backend    *Backend
	Policies   *PolicyRepository
	Profiles   *ProfileRepository
	Embeddings *EmbeddingRepository
	Builds     *BuildInfoRepository
}

// OpenRepositories opens a backend at path and creates all repositories on it.
func OpenRepositories(path string, inMemory bool, opts ...BackendOption) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory, opts...)
	if err != nil {
		return nil, err
	}

	policies, err := NewPolicyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Backend:    backend,
		Policies:   policies,
		Profiles:   NewProfileRepository(backend),
		Embeddings: NewEmbeddingRepository(backend),
		Builds:     NewBuildInfoRepository(backend),
	}, nil
}

// Close releases the repositories, then the backend.
func (r *Repositories) Close() error {
	var errs []error
	if err := r.Policies.Close(); err != nil {
		errs = append(errs, err)
	}
	if !r.Backend.IsClosed() {
		if err := r.Backend.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package platform

import (
	"github.com/aretw0/jotter/pkg/core"
)

// New creates a Store wired to the backend selected by the options.
//
//	store, err := jotter.New("./notes", jotter.WithAdapter("sqlite"))
//
// The URI argument is adapter-specific (see Init).
func New(uri string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	format, _ := o.config["format"].(string)
	codec, err := core.CodecByName(format)
	if err != nil {
		return nil, err
	}

	backend, err := initBackend(uri, o)
	if err != nil {
		return nil, err
	}

	key, _ := o.config["storage_key"].(string)
	eventBuffer, _ := o.config["event_buffer"].(int)

	storeOpts := []core.StoreOption{
		core.WithCodec(codec),
		core.WithStorageKey(key),
		core.WithEventBuffer(eventBuffer),
		core.WithIDGenerator(o.idGen),
		core.WithLogger(o.logger),
	}

	return core.NewStore(backend, storeOpts...), nil
}

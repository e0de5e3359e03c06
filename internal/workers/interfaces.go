// Package workers runs the background processes of the server.
// It defines the Worker interface and a Workers aggregate that runs several
// workers side by side until their context is cancelled.
package workers

import "context"

// Worker is implemented by every background process. Run blocks until ctx is
// cancelled and the worker has finished its pending work.
type Worker interface {
	Run(ctx context.Context)
}

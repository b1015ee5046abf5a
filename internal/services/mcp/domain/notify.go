package domain

import "context"

// ResourceUpdateNotifier announces that the resource at uri changed.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

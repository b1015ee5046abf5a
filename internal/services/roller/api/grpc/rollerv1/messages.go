package rollerv1

// RngRequest carries the caller's seed preferences.
type RngRequest struct {
	Seed     string `json:"seed,omitempty"`
	RollMode string `json:"roll_mode,omitempty"`
}

// RngResponse reports how a roll was seeded.
type RngResponse struct {
	SeedUsed   string `json:"seed_used"`
	RngAlgo    string `json:"rng_algo"`
	SeedSource string `json:"seed_source"`
	RollMode   string `json:"roll_mode"`
}

// RollRequest asks the dice service to evaluate a dice string.
type RollRequest struct {
	Dice string      `json:"dice"`
	Rng  *RngRequest `json:"rng,omitempty"`
}

// RollResult is one evaluated sub-expression.
type RollResult struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Total int64  `json:"total,string"`
}

// RollResponse holds the results in request order.
type RollResponse struct {
	Results    []RollResult `json:"results"`
	Normalized string       `json:"normalized"`
	Rng        *RngResponse `json:"rng,omitempty"`
}

// Clock is the wire form of a progress clock.
type Clock struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Segments  int    `json:"segments"`
	Filled    int    `json:"filled"`
	Complete  bool   `json:"complete"`
	Ephemeral bool   `json:"ephemeral"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateClockRequest creates a clock.
type CreateClockRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Segments  int    `json:"segments"`
	Filled    int    `json:"filled,omitempty"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
	Color     string `json:"color,omitempty"`
}

// CreateClockResponse returns the created clock.
type CreateClockResponse struct {
	Clock *Clock `json:"clock"`
}

// GetClockRequest identifies one clock.
type GetClockRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// GetClockResponse returns one clock.
type GetClockResponse struct {
	Clock *Clock `json:"clock"`
}

// ListClocksRequest pages through a namespace.
type ListClocksRequest struct {
	Namespace  string `json:"namespace"`
	PageSize   int32  `json:"page_size,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
	Filter     string `json:"filter,omitempty"`
	NamePrefix string `json:"name_prefix,omitempty"`
}

// ListClocksResponse returns one page of clocks.
type ListClocksResponse struct {
	Clocks        []*Clock `json:"clocks"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}

// BumpClockRequest moves a clock by Amount segments.
type BumpClockRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Amount    int    `json:"amount"`
}

// BumpClockResponse returns the clock after the bump.
type BumpClockResponse struct {
	Clock *Clock `json:"clock"`
}

// DeleteClockRequest removes a clock.
type DeleteClockRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// DeleteClockResponse is empty.
type DeleteClockResponse struct{}

// RenderClockRequest asks for an SVG drawing of a clock.
type RenderClockRequest struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Size      int    `json:"size,omitempty"`
}

// RenderClockResponse carries the SVG document.
type RenderClockResponse struct {
	Clock *Clock `json:"clock"`
	Svg   string `json:"svg"`
}

// GetNamespace returns the request namespace, or "" for a nil request.
func (x *CreateClockRequest) GetNamespace() string {
	if x == nil {
		return ""
	}
	return x.Namespace
}

func (x *GetClockRequest) GetNamespace() string {
	if x == nil {
		return ""
	}
	return x.Namespace
}

func (x *ListClocksRequest) GetNamespace() string {
	if x == nil {
		return ""
	}
	return x.Namespace
}

func (x *BumpClockRequest) GetNamespace() string {
	if x == nil {
		return ""
	}
	return x.Namespace
}

func (x *DeleteClockRequest) GetNamespace() string {
	if x == nil {
		return ""
	}
	return x.Namespace
}

func (x *RenderClockRequest) GetNamespace() string {
	if x == nil {
		return ""
	}
	return x.Namespace
}

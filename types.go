package boclient

// RateType selects how a merchant processing rate is applied.
type RateType string

const (
	// RateFixed is a flat amount per transaction.
	RateFixed RateType = "fixed"
	// RatePercent is a percentage of the transaction amount.
	RatePercent RateType = "percent"
)

// Credentials is the login request body for POST api/v1/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Merchant is the nested merchant profile carried by the identity record.
type Merchant struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	RatePayin      float64  `json:"ratePayin"`
	RatePayout     float64  `json:"ratePayout"`
	TypeRatePayin  RateType `json:"typeRatePayin"`
	TypeRatePayout RateType `json:"typeRatePayout"`
	Prefix         string   `json:"prefix"`
	Website        string   `json:"website"`
}

// User is the identity record returned by GET api/v1/bo/me. Permissions is
// the flat set of permission names checked by the navigation guard.
type User struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
	Merchant    Merchant `json:"merchant"`
}

// HasPermission reports whether the user holds the named permission.
func (u *User) HasPermission(name string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// SessionState is the lifecycle state of the local session.
type SessionState uint8

const (
	// StateAnonymous means no authenticated identity is held.
	StateAnonymous SessionState = iota
	// StateAuthenticating means a login chain is in flight.
	StateAuthenticating
	// StateAuthenticated means the identity fetch succeeded.
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Route describes one entry of the static route table consumed by the guard.
type Route struct {
	Path string
	Name string

	RequiresAuth bool
	// Permission, when non-empty, is additionally required on top of
	// authentication.
	Permission string
}

// Navigator receives route transitions decided by the session manager and the
// guard. Implementations typically drive the host application's router.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the [Navigator] interface.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

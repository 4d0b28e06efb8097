package boclient

// DefaultRoutes is the backoffice panel's route table. Everything except the
// login page sits behind authentication; most views additionally require a
// named permission. The table is static configuration and is never mutated
// at runtime.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/login", Name: "login"},
		{Path: "/dashboard", Name: "dashboard", RequiresAuth: true, Permission: "dashboard.view"},
		{Path: "/transactions", Name: "transactions", RequiresAuth: true, Permission: "transactions.view"},
		{Path: "/transactions/all", Name: "all-transactions", RequiresAuth: true, Permission: "all_transaction.view"},
		{Path: "/employee", Name: "employee", RequiresAuth: true, Permission: "user.view"},
		{Path: "/profile", Name: "profile", RequiresAuth: true},
		{Path: "/commission", Name: "commission", RequiresAuth: true, Permission: "commission.view"},
		{Path: "/commission-recived", Name: "commission-received", RequiresAuth: true, Permission: "commission.view"},
		{Path: "/agent", Name: "agent", RequiresAuth: true, Permission: "agent.view"},
		{Path: "/merchant", Name: "merchant", RequiresAuth: true, Permission: "merchant.view"},
		{Path: "/api", Name: "api", RequiresAuth: true, Permission: "api.view"},
		{Path: "/role", Name: "role", RequiresAuth: true, Permission: "role.view"},
		{Path: "/topup", Name: "topup", RequiresAuth: true, Permission: "topup.view"},
		{Path: "/transferout", Name: "transferout", RequiresAuth: true, Permission: "transferout.view"},
		{Path: "/banks", Name: "banks", RequiresAuth: true, Permission: "bank.view"},
		{Path: "/accounts", Name: "accounts", RequiresAuth: true, Permission: "account.view"},
		{Path: "/mannul", Name: "manual", RequiresAuth: true},
		{Path: "/setting", Name: "setting", RequiresAuth: true, Permission: "setting.view"},
		{Path: "/system", Name: "system", RequiresAuth: true, Permission: "system.view"},
		{Path: "/announcement", Name: "announcement", RequiresAuth: true, Permission: "announcement.view"},
		{Path: "/account/groups", Name: "account-groups", RequiresAuth: true, Permission: "bank.view"},
		{Path: "/refund", Name: "refund", RequiresAuth: true, Permission: "refund.view"},
		{Path: "/statement", Name: "statement", RequiresAuth: true, Permission: "statement.view"},
		{Path: "/message", Name: "message", RequiresAuth: true, Permission: "telegram_message.view"},
		{Path: "/accounts/settlement", Name: "account-settlement", RequiresAuth: true, Permission: "settlement_account.view"},
		{Path: "/customers", Name: "customers", RequiresAuth: true, Permission: "customers.view"},
		{Path: "/profit", Name: "profit", RequiresAuth: true, Permission: "agent.view"},
		{Path: "/freeze-balance-merchant", Name: "freeze-balance-merchant", RequiresAuth: true, Permission: "merchant.view"},
		{Path: "/blacklist", Name: "blacklist", RequiresAuth: true, Permission: "blacklist.view"},
		{Path: "/merchant-activity", Name: "merchant-activity", RequiresAuth: true, Permission: "agent.view"},
		{Path: "/blocked-account", Name: "blocked-account", RequiresAuth: true, Permission: "blacklist.view"},
	}
}

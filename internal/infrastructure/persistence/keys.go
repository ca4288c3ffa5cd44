package persistence

// Document keys. These names are part of the external interface: an
// importer migrating existing browser-exported data relies on them
// staying exactly as they are.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyCoupons  = "coupons"
	KeyOrders   = "orders"
	KeyUsers    = "users"

	// Session is mirrored across three keys that are always written and
	// cleared together
	KeyLoginUser = "loginUser"
	KeyLoginInfo = "loginInfo"
	KeyIsLogin   = "isLogin"

	// Legacy session key some older clients wrote alongside loginInfo.
	// Logout removes it so stale copies cannot outlive the session.
	KeyAuth = "auth"

	// Checkout flow shadow state
	KeyPayPayload   = "payPayload"
	KeyLastCheckout = "lastCheckout"
	KeyPendingOrder = "pendingOrder"
	KeyCartCheckout = "cartCheckout"
)

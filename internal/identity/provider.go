package identity

// Providerは現在のユーザーIDを解決する。
// カート側は呼び出しのたびに再解決する前提なのでキャッシュしない。
type Provider interface {
	UserID() (string, bool)
}

// ProviderFuncは関数をProviderとして使うためのアダプタ
type ProviderFunc func() (string, bool)

func (f ProviderFunc) UserID() (string, bool) {
	return f()
}

// FromTokenはbearerトークンからProviderを作る。
// トークンがデコードできない場合は匿名扱い。
func FromToken(raw string) Provider {
	return ProviderFunc(func() (string, bool) {
		c := Decode(raw)
		if c.UserID == "" {
			return "", false
		}
		return c.UserID, true
	})
}

package core

import "testing"

func assertKeys(t *testing.T, body map[string]any, keys ...string) {
	t.Helper()
	if len(body) != len(keys) {
		t.Fatalf("expected keys %v, got %v", keys, body)
	}
	for _, key := range keys {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected key %q in %v", key, body)
		}
	}
}

func TestAuthorizationCodeBody_ExactShape(t *testing.T) {
	body := AuthorizationCodeBody("app_1", "key_1", "code_1")
	assertKeys(t, body, "client_id", "client_secret", "grant_type", "code")
	if body["grant_type"] != "authorization_code" {
		t.Fatalf("expected authorization_code grant, got %v", body["grant_type"])
	}
	if body["client_id"] != "app_1" || body["client_secret"] != "key_1" || body["code"] != "code_1" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRefreshTokenBody_NeverCarriesCode(t *testing.T) {
	body := RefreshTokenBody("app_1", "key_1", "refresh_1")
	assertKeys(t, body, "client_id", "client_secret", "grant_type", "refresh_token")
	if body["grant_type"] != "refresh_token" {
		t.Fatalf("expected refresh_token grant, got %v", body["grant_type"])
	}
	if body["refresh_token"] != "refresh_1" {
		t.Fatalf("expected refresh token value")
	}
	if _, ok := body["code"]; ok {
		t.Fatalf("refresh body must not include code")
	}
}

func TestUserTransferBody_DescriptionOptional(t *testing.T) {
	body := UserTransferBody("app_1", 25, nil)
	assertKeys(t, body, "appId", "tokens")
	if body["tokens"] != int64(25) {
		t.Fatalf("expected tokens amount, got %v", body["tokens"])
	}

	body = UserTransferBody("app_1", 25, String("Sword of dawn"))
	assertKeys(t, body, "appId", "tokens", "description")
	if body["description"] != "Sword of dawn" {
		t.Fatalf("unexpected description %v", body["description"])
	}
}

func TestServerTransferBody_AddressWithoutUser(t *testing.T) {
	body := ServerTransferBody(10, nil, String("0xabc"))
	assertKeys(t, body, "amount", "address")
	if body["address"] != "0xabc" {
		t.Fatalf("unexpected address %v", body["address"])
	}
	if _, ok := body["user"]; ok {
		t.Fatalf("user must be absent when only an address is supplied")
	}

	body = ServerTransferBody(10, String("usr_1"), nil)
	assertKeys(t, body, "amount", "user")
}

func TestStringHelpers(t *testing.T) {
	if StringValue(nil) != "" {
		t.Fatalf("expected empty value for nil")
	}
	if StringValue(String("x")) != "x" {
		t.Fatalf("expected round trip")
	}
}

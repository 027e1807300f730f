package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cstockton/go-conv"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// BindAndValidate binds body, path params, query, headers (`header` tag) and
// registered jwt claims (`jwt` tag) into req, then validates it. Validation
// failures become a 400.
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	if err := bindHeader(c.Request().Header, req); err != nil {
		return err
	}

	if err := bindJwt(c, req); err != nil {
		return err
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

func registeredClaims(c echo.Context) *jwt.RegisteredClaims {
	token, ok := c.Get(userKey).(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, _ := token.Claims.(*jwt.RegisteredClaims)
	return claims
}

// GetUserID returns the subject of the authenticated token, or "".
func GetUserID(c echo.Context) string {
	if claims := registeredClaims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

func unixOrZero(t *jwt.NumericDate) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

// bindJwt decodes registered claims into fields tagged `jwt:"<claim>"`.
func bindJwt(c echo.Context, dst any) error {
	claims := registeredClaims(c)
	if claims == nil {
		return nil
	}

	return bindStruct(dst, "jwt", func(claim string) (any, error) {
		switch claim {
		case "sub":
			return claims.Subject, nil
		case "iss":
			return claims.Issuer, nil
		case "aud":
			return strings.Join(claims.Audience, ";"), nil
		case "jti":
			return claims.ID, nil
		case "exp":
			return unixOrZero(claims.ExpiresAt), nil
		case "iat":
			return unixOrZero(claims.IssuedAt), nil
		case "nbf":
			return unixOrZero(claims.NotBefore), nil
		}
		return nil, fmt.Errorf("binding jwt field %s is not supported", claim)
	})
}

// bindHeader decodes headers into fields tagged `header:"<name>"`.
func bindHeader(header http.Header, dst any) error {
	return bindStruct(dst, "header", func(name string) (any, error) {
		return header.Get(name), nil
	})
}

// bindStruct fills the fields of the struct dst points to whose tagName tag is
// set, using getValue to look the value up by tag value.
func bindStruct(dst any, tagName string, getValue func(tagValue string) (any, error)) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Ptr {
		return fmt.Errorf("non-pointer passed to bind %s", tagName)
	}

	indirect := reflect.Indirect(ptr)
	structType := indirect.Type()
	for i := range structType.NumField() {
		structField := structType.Field(i)
		tagValue := structField.Tag.Get(tagName)
		if tagValue == "-" || tagValue == "" {
			continue
		}

		field := indirect.Field(i)
		value, err := getValue(tagValue)
		if err != nil {
			return err
		}
		if err := conv.Infer(field, value); err != nil {
			return fmt.Errorf("cannot parse %s.%s as %s from: %#v / %s",
				structType.Name(), structField.Name, field.Type(), value, err)
		}
	}

	return nil
}

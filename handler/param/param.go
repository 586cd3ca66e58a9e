package param

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
	decoder.RegisterConverter(decimal.Decimal{}, func(v string) reflect.Value {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return reflect.Value{}
		}

		return reflect.ValueOf(d)
	})
}

// Binding binds route params, query values and the json body into v,
// then validates it with govalidator tags.
func Binding(r *http.Request, v interface{}) error {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
			return err
		}
	}

	values := url.Values{}
	for k, vs := range r.URL.Query() {
		values[k] = vs
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for idx, key := range rctx.URLParams.Keys {
			values.Set(key, rctx.URLParams.Values[idx])
		}
	}

	if len(values) > 0 {
		if err := decoder.Decode(v, values); err != nil {
			return err
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

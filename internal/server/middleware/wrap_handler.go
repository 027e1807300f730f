package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"

	"github.com/labstack/echo/v4"
)

var (
	ctxInterface   = reflect.TypeOf((*echo.Context)(nil)).Elem()
	errorInterface = reflect.TypeOf((*error)(nil)).Elem()
)

// WrapHandler turns a typed handler into an echo.HandlerFunc. f must look like
//
//	func(c echo.Context, req T) (any, error)
//	func(c echo.Context, req T) error
//
// where T is a struct. The request is bound and validated with BindAndValidate
// before f runs. A returned value is written as a successful Response, unless
// it already is a *Response. Handlers returning only an error reply 204 when
// they did not write a response themselves.
func WrapHandler(f any) echo.HandlerFunc {
	handler, err := wrapHandler(f)
	if err != nil {
		panic(err)
	}
	return handler
}

func wrapHandler(f any) (echo.HandlerFunc, error) {
	fTyp := reflect.TypeOf(f)
	fVal := reflect.ValueOf(f)
	if fVal.Kind() != reflect.Func {
		return nil, fmt.Errorf("invalid function passed to wrap handler: %v", fVal)
	}
	fName := runtime.FuncForPC(fVal.Pointer()).Name()

	if numIn := fTyp.NumIn(); numIn != 2 {
		return nil, fmt.Errorf("[%s] invalid function arguments length: %d", fName, numIn)
	}
	if !fTyp.In(0).Implements(ctxInterface) {
		return nil, fmt.Errorf("[%s] first argument must have type echo.Context", fName)
	}
	reqType := fTyp.In(1)
	if reqType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("[%s] second argument must be a struct: %v", fName, reqType.Kind())
	}

	numOut := fTyp.NumOut()
	if numOut < 1 || numOut > 2 {
		return nil, fmt.Errorf("[%s] invalid function returns length: %d", fName, numOut)
	}
	errorIndex := numOut - 1
	if !fTyp.Out(errorIndex).Implements(errorInterface) {
		return nil, fmt.Errorf("[%s] last return argument must have type error: %v", fName, fTyp.Out(errorIndex))
	}

	return func(c echo.Context) error {
		req := reflect.New(reqType)
		if err := BindAndValidate(c, req.Interface()); err != nil {
			return err
		}

		res := fVal.Call([]reflect.Value{reflect.ValueOf(c), req.Elem()})
		if errVal := res[errorIndex]; !errVal.IsNil() {
			return errVal.Interface().(error)
		}

		if c.Response().Committed {
			return nil
		}
		if numOut == 1 {
			return c.NoContent(http.StatusNoContent)
		}

		data := res[0].Interface()
		if resp, ok := data.(*Response); ok {
			if resp.Status == 0 {
				resp.Status = http.StatusOK
			}
			return c.JSON(resp.Status, resp)
		}
		return c.JSON(http.StatusOK, &Response{Success: true, Data: data})
	}, nil
}

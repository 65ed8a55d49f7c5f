package tools

import (
	"context"
	"net/url"
	"strings"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// URLEncoderInput is the argument object of the url-encoder tool
type URLEncoderInput struct {
	Text string `json:"text"`
	Mode string `json:"mode"` // encode or decode
	// Component selects query-component escaping; otherwise path-segment escaping is used
	Component *bool `json:"component"`
}

// URLEncoderOutput is the converted text
type URLEncoderOutput struct {
	Result string `json:"result"`
	Mode   string `json:"mode"`
}

// URLEncoderLoader returns the loader registered for url-encoder
func URLEncoderLoader() Loader {
	return Static(Typed(EncodeURL))
}

// EncodeURL percent-encodes or decodes text
func EncodeURL(_ context.Context, in URLEncoderInput) (URLEncoderOutput, error) {
	component := in.Component == nil || *in.Component

	switch strings.ToLower(in.Mode) {
	case "", "encode":
		if component {
			return URLEncoderOutput{Result: url.QueryEscape(in.Text), Mode: "encode"}, nil
		}
		return URLEncoderOutput{Result: url.PathEscape(in.Text), Mode: "encode"}, nil
	case "decode":
		var (
			res string
			err error
		)
		if component {
			res, err = url.QueryUnescape(in.Text)
		} else {
			res, err = url.PathUnescape(in.Text)
		}
		if err != nil {
			return URLEncoderOutput{}, apperrors.NewInvalidInput("text", err.Error())
		}
		return URLEncoderOutput{Result: res, Mode: "decode"}, nil
	default:
		return URLEncoderOutput{}, apperrors.NewInvalidInput("mode", "must be encode or decode")
	}
}

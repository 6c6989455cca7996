package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseOf(t *testing.T) {
	assert.Equal(t, PhaseValidating, PhaseOf(SourceDialogCodeHook))
	assert.Equal(t, PhaseFulfilling, PhaseOf(SourceFulfillmentCodeHook))
	assert.Equal(t, PhaseFulfilling, PhaseOf("dialogcodehook"))
	assert.Equal(t, PhaseFulfilling, PhaseOf(""))
}

func TestValidationResultInvariant(t *testing.T) {
	ok := Valid()
	assert.True(t, ok.IsValid)
	assert.Empty(t, ok.ViolatedSlot)
	assert.Nil(t, ok.Message)

	bad := Invalid("cadAmount", "try again")
	assert.False(t, bad.IsValid)
	assert.Equal(t, "cadAmount", bad.ViolatedSlot)
	require.NotNil(t, bad.Message)
	assert.Equal(t, ContentTypePlainText, bad.Message.ContentType)
}

func TestDialogActionJSON(t *testing.T) {
	amount := "10"
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			name: "delegate",
			resp: Response{
				SessionAttributes: map[string]string{"k": "v"},
				DialogAction:      Delegate{Slots: Slots{"cadAmount": &amount, "birthday": nil}},
			},
			want: `{"sessionAttributes":{"k":"v"},"dialogAction":{"type":"Delegate","slots":{"cadAmount":"10","birthday":null}}}`,
		},
		{
			name: "close",
			resp: Response{
				SessionAttributes: map[string]string{},
				DialogAction:      Close{FulfillmentState: FulfillmentStateFulfilled, Message: PlainText("done")},
			},
			want: `{"sessionAttributes":{},"dialogAction":{"type":"Close","fulfillmentState":"Fulfilled","message":{"contentType":"PlainText","content":"done"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestRequestDecode(t *testing.T) {
	body := `{
		"currentIntent": {"name": "convertCAD", "slots": {"birthday": null, "cadAmount": "25"}},
		"userId": "u-42",
		"invocationSource": "DialogCodeHook",
		"sessionAttributes": {"a": "b"}
	}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "convertCAD", req.CurrentIntent.Name)
	assert.Nil(t, req.CurrentIntent.Slots["birthday"])
	require.NotNil(t, req.CurrentIntent.Slots["cadAmount"])
	assert.Equal(t, "25", *req.CurrentIntent.Slots["cadAmount"])
	assert.Equal(t, PhaseValidating, PhaseOf(req.InvocationSource))

	clone := req.CurrentIntent.Slots.Clone()
	clone["cadAmount"] = nil
	assert.NotNil(t, req.CurrentIntent.Slots["cadAmount"])
}

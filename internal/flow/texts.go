package flow

// User-facing copy for the payout conversation.
const (
	textChooseCountry = "🌎 Choose a country:"
	textChooseKind    = "🖼 Choose the screenshot type:"
	textEnterAccount  = "💳 Send the account number:"
	textEnterAmount   = "💰 Send the payout amount:"
	textBadAmount     = "⚠️ That doesn't look like a number. Send the amount again, e.g. 1000.50"
	textGenerating    = "⏳ Generating the screenshot, this takes a few seconds..."
	textRenderFailed  = "❌ Could not generate the screenshot. Start over with /start"
	textCancelled     = "Cancelled. Start a new one with /start"
	textNothingToDo   = "Nothing to cancel. Start with /start"
	textUseButtons    = "Use the buttons above to continue, or /cancel to stop."
	textStartHint     = "Send /start to generate a payout screenshot."
	textStaleButton   = "That keyboard is no longer active. Send /start to begin again."

	kindWaitingLabel = "⏳ Waiting for payout"
	kindErrorLabel   = "❌ Payout error"
)

package messages

const (
	BadStatusCodeMsg   = "API returned status code %d on URL %s"
	FailedToParseMsg   = "failed to parse API response"
	InvalidPseudoMsg   = "invalid pseudo, expected the Name#Tag format"
	PlayerNotFoundMsg  = "player not found"
	RequestFailedMsg   = "API request failed on URL %s"
	UnauthorizedKeyMsg = "Riot 403: invalid or unauthorized key"
)

package manifest

// NewRemoteWithClient exports newRemoteWithClient for testing.
var NewRemoteWithClient = newRemoteWithClient

// DecodeRemote exports decodeRemote for testing.
var DecodeRemote = decodeRemote

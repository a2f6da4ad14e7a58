// Package uriutil converts between file system paths and file:// URIs.
// Language server traffic addresses documents by URI while the linter
// and the catalog loader work in paths, so conversions happen at the
// protocol boundary and nowhere else.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI converts a file system path to a file:// URI.
// Handles both Windows and POSIX paths correctly:
//   - C:\proj -> file:///C:/proj
//   - /home/user -> file:///home/user
//   - \\server\share -> file://server/share (UNC)
//   - C:\Foo Bar -> file:///C:/Foo%20Bar (percent-encoded)
func PathToURI(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// Windows UNC path: \\server\share\path -> file://server/share/path
	if runtime.GOOS == "windows" && strings.HasPrefix(absPath, `\\`) {
		uncPath := filepath.ToSlash(strings.TrimPrefix(absPath, `\\`))
		segments := strings.Split(uncPath, "/")
		for i, seg := range segments {
			segments[i] = url.PathEscape(seg)
		}
		return "file://" + strings.Join(segments, "/")
	}

	absPath = filepath.ToSlash(absPath)

	// A Windows drive path C:/proj needs a leading slash to become the
	// URI path /C:/proj; POSIX paths already carry one.
	if !strings.HasPrefix(absPath, "/") {
		absPath = "/" + absPath
	}

	// Percent-encode each segment, skipping the empties between slashes.
	segments := strings.Split(absPath, "/")
	for i, seg := range segments {
		if seg != "" {
			segments[i] = url.PathEscape(seg)
		}
	}
	return "file://" + strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a file system path.
// Handles both Windows and POSIX URIs correctly:
//   - file:///C:/proj -> C:\proj (on Windows) or C:/proj (on POSIX)
//   - file:///home/user -> /home/user
//   - file://server/share -> \\server\share (UNC on Windows)
//   - file:///C:/Foo%20Bar -> C:\Foo Bar (percent-decoded)
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uriFallback(uri)
	}

	path := parsed.Path

	// A URI with a host is a UNC reference: file://server/share/path
	if parsed.Host != "" {
		if runtime.GOOS == "windows" {
			host, _ := url.PathUnescape(parsed.Host)
			pathDecoded, _ := url.PathUnescape(path)
			return `\\` + host + strings.ReplaceAll(pathDecoded, "/", `\`)
		}
		return parsed.Host + path
	}

	decodedPath, err := url.PathUnescape(path)
	if err != nil {
		decodedPath = path
	}

	// A Windows URI path arrives as /C:/proj; strip the leading slash.
	if len(decodedPath) >= 3 && decodedPath[0] == '/' && decodedPath[2] == ':' {
		decodedPath = decodedPath[1:]
	}

	return filepath.FromSlash(decodedPath)
}

// uriFallback handles URIs that url.Parse rejects, leniently.
func uriFallback(uri string) string {
	path := uri
	if strings.HasPrefix(path, "file:///") {
		path = path[7:] // keep one slash
	} else if strings.HasPrefix(path, "file://") {
		path = path[7:]
	}

	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path)
}

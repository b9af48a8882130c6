// Package desktop wires the desktop trigger surfaces to the window manager.
//
// Desktop icons and launcher entries name an app id; the shell resolves it
// through the catalog once and opens the window with the catalog's title,
// icon and a fresh content panel. The taskbar lists minimized windows as
// restore buttons.
//
// The shell is constructed once at the application root and passed to the
// HTTP and WebSocket surfaces.
package desktop

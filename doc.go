// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package uibridge embeds a retained-mode UI runtime inside a host
// application's real-time render loop.
//
// The bridge connects three things the host already owns: its per-frame
// update/draw callbacks, its input devices, and its graphics-device
// lifecycle. On the other side sits a UI runtime that loads markup
// documents into element trees and renders them. uibridge owns the
// ordering contract between the two.
//
// # Architecture
//
//	host render loop ── Bridge ── Runtime (document loading, views)
//	                      │
//	                      ├── viewSession   (document tree + renderer binding,
//	                      │                  viewport tracking, HAL targets)
//	                      ├── InputManager  (device snapshots → UI events)
//	                      └── provider.Bundle (fonts, textures, documents)
//
// # Usage
//
//	dev := hostDevice()                     // implements uibridge.Device
//	bundle := provider.NewBundle(docs, fonts, textures)
//
//	b, err := uibridge.New(uibridge.Config{
//	    Device:       dev,
//	    Window:       win,
//	    RootDocument: "ui/main.xaml",
//	    Providers:    bundle,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	for running {
//	    b.UpdateInput(dt, win.Focused())
//	    game.Update(dt)
//	    b.Update(dt)
//	    b.PreRender()
//	    dev.Clear()
//	    game.Draw()
//	    b.Render()
//	}
//
// # Lifecycle
//
// A Bridge has two states: active, where frame calls are accepted (New
// returns bridges already active), and closed, which is one-way and
// idempotent. Construction either completes fully or unwinds everything
// it registered; there is no partially activated bridge. Teardown runs in
// dependency order, detaching the device-event subscription before the
// view session is destroyed so a loss/reset notification can never reach
// a half-destroyed session.
//
// The UI runtime's process-wide initialization is shared by every bridge
// in the process: the first bridge initializes it, later bridges observe
// that first outcome, and no bridge tears it down.
//
// # Thread Safety
//
// Bridge methods are NOT safe for concurrent use. Everything runs on the
// host's render-loop thread, including device lost/reset notifications.
// Only SetLogger/Logger may be called from other goroutines.
package uibridge

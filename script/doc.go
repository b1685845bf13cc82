// Package script runs Lua command handlers inside a sandboxed interpreter.
//
// A Host owns one gopher-lua state shared by every script it loads. The
// state opens only the safe standard libraries (base, table, string, math);
// file system, process and module loading access are not available, and the
// chunk loaders (dofile, loadfile, load) are removed so a script cannot pull
// in code the host never saw.
//
// A command script defines a single function:
//
//	-- greet.lua
//	function on_command(ctx)
//	    chat.reply("hello " .. ctx.sender.display .. "!")
//	end
//
// Host.Command compiles the file and returns a bot.Handler that calls
// on_command once per invocation:
//
//	host := script.NewHost(client)
//	defer host.Close()
//
//	h, err := host.Command("greet", "scripts/greet.lua")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b.Handle("greet", h)
//
// Scripts talk back through the chat module: chat.say(channel, text),
// chat.reply(text), chat.channel(), chat.sender() and chat.args(). The
// module reads from the invocation being served, so it only works inside
// on_command.
//
// Each call runs under a deadline; a script stuck in a loop is cut off at
// the interpreter's next safepoint and the invocation fails like any other
// handler error. Script failures never propagate past the bot's router.
package script
